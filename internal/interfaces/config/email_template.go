// Package config
package config

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
)

const defaultVerifyCodeTemplate = `<html><body>
<p>您好 {{.Username}},</p>
<p>您的验证码为 <b>{{.Code}}</b>, {{.Expired}} 分钟内有效。</p>
<p>Stand Planner</p>
</body></html>`

const defaultMaintenanceStatusTemplate = `<html><body>
<p>您好 {{.Username}},</p>
<p>机位 <b>{{.StandCode}}</b> 的维护申请 #{{.RequestId}} 状态已更新为 <b>{{.Status}}</b>。</p>
<p>维护窗口: {{.StartTime}} 至 {{.EndTime}}</p>
<p>Stand Planner</p>
</body></html>`

type EmailTemplateConfig struct {
	TemplateDir               string             `json:"template_dir"`
	VerifyCodeFile            string             `json:"verify_code_file"`
	MaintenanceStatusFile     string             `json:"maintenance_status_file"`
	VerifyCodeTemplate        *template.Template `json:"-"`
	MaintenanceStatusTemplate *template.Template `json:"-"`
	VerifyCodeSubject         string             `json:"verify_code_subject"`
	MaintenanceStatusSubject  string             `json:"maintenance_status_subject"`
}

func defaultEmailTemplateConfig() *EmailTemplateConfig {
	return &EmailTemplateConfig{
		TemplateDir:              "templates",
		VerifyCodeFile:           "email_verify.template",
		MaintenanceStatusFile:    "maintenance_status.template",
		VerifyCodeSubject:        "邮箱验证码",
		MaintenanceStatusSubject: "机位维护申请状态变更",
	}
}

func loadTemplate(name, path, fallback string) (*template.Template, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), global.DefaultDirectoryPermission); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(fallback), global.DefaultFilePermissions); err != nil {
			return nil, err
		}
		content = []byte(fallback)
	} else if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

func (config *EmailTemplateConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	verifyPath := filepath.Join(config.TemplateDir, config.VerifyCodeFile)
	if tpl, err := loadTemplate("verify_code", verifyPath, defaultVerifyCodeTemplate); err != nil {
		return ValidFailWith(fmt.Errorf("fail to load email template %s", verifyPath), err)
	} else {
		config.VerifyCodeTemplate = tpl
	}

	maintenancePath := filepath.Join(config.TemplateDir, config.MaintenanceStatusFile)
	if tpl, err := loadTemplate("maintenance_status", maintenancePath, defaultMaintenanceStatusTemplate); err != nil {
		return ValidFailWith(fmt.Errorf("fail to load email template %s", maintenancePath), err)
	} else {
		config.MaintenanceStatusTemplate = tpl
	}

	return ValidPass()
}
