package lib

import (
	"spenden/src/config"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

func GetSMTPClient() (*mail.Client, error) {
	cfg := config.Get()
	c, err := mail.NewClient(
		cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		log.WithError(err).Error("Could not initialize smtp client")
		return nil, err
	}
	return c, nil
}

type SendMailInput struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	Html     bool
}

var sendMail func(*SendMailInput) error

func SendMail(inputParams *SendMailInput) error {
	if sendMail != nil {
		return sendMail(inputParams)
	}
	c, err := GetSMTPClient()
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(inputParams.FromName, inputParams.From); err != nil {
		log.WithError(err).Error("Failed to set From address")
	}
	if err := msg.To(inputParams.To...); err != nil {
		log.WithError(err).Error("Failed to set To address")
	}
	if inputParams.ReplyTo != "" {
		if err := msg.ReplyTo(inputParams.ReplyTo); err != nil {
			log.WithError(err).Error("Failed to set Reply-To address")
		}
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	if err := c.DialAndSend(msg); err != nil {
		return err
	}
	return nil
}

// NewSendMail Replace mail delivery with custom sender implementation
func NewSendMail(fn func(*SendMailInput) error) {
	sendMail = fn
}
