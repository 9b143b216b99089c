// Package service
package service

import (
	"errors"
	"fmt"
	"html/template"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"gopkg.in/gomail.v2"
)

var (
	emailService *EmailService
	once         sync.Once
)

type EmailService struct {
	logger       log.LoggerInterface
	emailCodes   map[string]EmailCode
	lastSendTime map[string]time.Time
	config       *c.EmailConfig
}

type EmailCode struct {
	code     int
	sendTime time.Time
}

type EmailVerifyTemplateData struct {
	Username string
	Code     string
	Expired  string
}

type MaintenanceStatusTemplateData struct {
	Username  string
	StandCode string
	RequestId string
	Status    string
	StartTime string
	EndTime   string
}

func NewEmailService(logger log.LoggerInterface, config *c.EmailConfig) *EmailService {
	once.Do(func() {
		emailService = &EmailService{
			logger:       logger,
			config:       config,
			emailCodes:   make(map[string]EmailCode),
			lastSendTime: make(map[string]time.Time),
		}
	})
	return emailService
}

var (
	ErrEmailSendInterval      = errors.New("email send interval")
	ErrRenderingTemplate      = errors.New("error rendering template")
	ErrTemplateNotInitialized = errors.New("error template not initialized")
	ErrEmailCodeNotFound      = errors.New("email code not found")
	ErrEmailCodeExpired       = errors.New("email code expired")
	ErrInvalidEmailCode       = errors.New("invalid email code")
)

func (emailService *EmailService) RenderTemplate(template *template.Template, data interface{}) (string, error) {
	if template == nil {
		return "", ErrTemplateNotInitialized
	}
	var sb strings.Builder
	if err := template.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (emailService *EmailService) VerifyCode(email string, code int) error {
	if emailService.config.EmailServer == nil {
		return nil
	}
	email = strings.ToLower(email)
	emailCode, ok := emailService.emailCodes[email]
	if !ok {
		return ErrEmailCodeNotFound
	}

	if time.Since(emailCode.sendTime) > emailService.config.VerifyExpiredDuration {
		return ErrEmailCodeExpired
	}

	if emailCode.code != code {
		return ErrInvalidEmailCode
	}

	delete(emailService.emailCodes, email)
	return nil
}

func (emailService *EmailService) SendEmailCode(email string) error {
	if emailService.config.EmailServer == nil {
		return nil
	}
	email = strings.ToLower(email)
	if lastSendTime, ok := emailService.lastSendTime[email]; ok {
		if time.Since(lastSendTime) < emailService.config.SendDuration {
			return ErrEmailSendInterval
		}
	}
	code := rand.Intn(9e5) + 1e5
	emailCode := EmailCode{code: code, sendTime: time.Now()}
	data := &EmailVerifyTemplateData{
		Username: email,
		Code:     strconv.Itoa(code),
		Expired:  strconv.Itoa(int(emailService.config.VerifyExpiredDuration.Minutes())),
	}

	message, err := emailService.RenderTemplate(emailService.config.Template.VerifyCodeTemplate, data)
	if err != nil {
		emailService.logger.WarnF("Error rendering email verification template: %v", err)
		return ErrRenderingTemplate
	}

	m := gomail.NewMessage()
	m.SetHeader("From", emailService.config.Username)
	m.SetHeader("To", email)
	m.SetHeader("Subject", emailService.config.Template.VerifyCodeSubject)
	m.SetBody("text/html", message)

	emailService.emailCodes[email] = emailCode
	emailService.lastSendTime[email] = time.Now()

	emailService.logger.InfoF("Sending email verification code(%d) to %s", code, email)

	return emailService.config.EmailServer.DialAndSend(m)
}

func (emailService *EmailService) SendMaintenanceStatusEmail(
	request *operation.MaintenanceRequest,
	stand *operation.Stand,
	requester, operator *operation.User,
) error {
	if emailService.config.EmailServer == nil {
		return nil
	}
	email := strings.ToLower(requester.Email)
	data := &MaintenanceStatusTemplateData{
		Username:  requester.Username,
		StandCode: stand.Code,
		RequestId: strconv.Itoa(int(request.ID)),
		Status:    operation.MaintenanceStatus(request.Status).String(),
		StartTime: request.StartTime.Format(global.DayLayout + " " + global.ClockLayout),
		EndTime:   request.EndTime.Format(global.DayLayout + " " + global.ClockLayout),
	}
	message, err := emailService.RenderTemplate(emailService.config.Template.MaintenanceStatusTemplate, data)
	if err != nil {
		emailService.logger.WarnF("Error rendering maintenance status template: %v", err)
		return ErrRenderingTemplate
	}

	m := gomail.NewMessage()
	m.SetHeader("From", emailService.config.Username)
	m.SetHeader("To", email)
	m.SetHeader("Subject", emailService.config.Template.MaintenanceStatusSubject)
	m.SetBody("text/html", message)

	emailService.logger.InfoF("Sending maintenance status email for request %d to %s(operated by %s)",
		request.ID, email, operator.Username)

	return emailService.config.EmailServer.DialAndSend(m)
}

var (
	SendEmailSuccess  = ApiStatus{StatusName: "SEND_EMAIL_SUCCESS", Description: "邮件发送成功", HttpCode: Ok}
	ErrRenderTemplate = ApiStatus{StatusName: "RENDER_TEMPLATE_ERROR", Description: "发送失败", HttpCode: ServerInternalError}
	ErrSendEmail      = ApiStatus{StatusName: "EMAIL_SEND_ERROR", Description: "发送失败", HttpCode: ServerInternalError}
)

func (emailService *EmailService) SendEmailVerifyCode(req *RequestEmailVerifyCode) *ApiResponse[ResponseEmailVerifyCode] {
	if emailService.config.EmailServer == nil {
		return NewApiResponse(&SendEmailSuccess, Unsatisfied, &ResponseEmailVerifyCode{Email: req.Email})
	}
	if req.Email == "" {
		return NewApiResponse[ResponseEmailVerifyCode](&ErrIllegalParam, Unsatisfied, nil)
	}
	err := emailService.SendEmailCode(req.Email)
	if err == nil {
		return NewApiResponse(&SendEmailSuccess, Unsatisfied, &ResponseEmailVerifyCode{Email: req.Email})
	}
	if errors.Is(err, ErrEmailSendInterval) {
		return NewApiResponse[ResponseEmailVerifyCode](&ApiStatus{
			StatusName: "EMAIL_SEND_INTERVAL",
			Description: fmt.Sprintf("邮件已发送, 请在%d秒后重试",
				int(emailService.config.SendDuration.Seconds())),
			HttpCode: BadRequest,
		}, Unsatisfied, nil)
	}
	if errors.Is(err, ErrRenderingTemplate) {
		return NewApiResponse[ResponseEmailVerifyCode](&ErrRenderTemplate, Unsatisfied, nil)
	}
	return NewApiResponse[ResponseEmailVerifyCode](&ErrSendEmail, Unsatisfied, nil)
}
