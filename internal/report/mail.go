package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Message is one outgoing report e-mail.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers report e-mails.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}

// sesAPI is the part of the SES v2 client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// MailConfig configures SESMailer. An empty From disables sending.
type MailConfig struct {
	From   string
	To     string
	Region string
}

// SESMailer sends reports through Amazon SES.
type SESMailer struct {
	client sesAPI
	from   string
	to     string
	logger *slog.Logger
}

// NewSESMailer loads the default AWS configuration and creates a mailer.
// Without a sender or recipient the mailer is disabled and no AWS
// configuration is loaded.
func NewSESMailer(ctx context.Context, cfg MailConfig, logger *slog.Logger) (*SESMailer, error) {
	if cfg.From == "" || cfg.To == "" {
		logger.Info("report mail disabled: no sender or recipient configured")
		return &SESMailer{logger: logger}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("report mail enabled", "from", cfg.From, "to", cfg.To, "region", cfg.Region)
	return newSESMailer(sesv2.NewFromConfig(awsCfg), cfg, logger), nil
}

func newSESMailer(client sesAPI, cfg MailConfig, logger *slog.Logger) *SESMailer {
	return &SESMailer{client: client, from: cfg.From, to: cfg.To, logger: logger}
}

// Enabled reports whether Send delivers anything.
func (m *SESMailer) Enabled() bool {
	return m.client != nil
}

// Send e-mails msg to the configured recipient.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return fmt.Errorf("report mail is not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{m.to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	m.logger.Info("report mail sent", "to", m.to, "message_id", aws.ToString(out.MessageId))
	return nil
}
