// Package ses provides email notifications via AWS SES.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	appConfig "github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// Service handles SES email operations.
type Service struct {
	client    *ses.Client
	fromEmail string
}

// BookingConfirmationParams contains data for a booking confirmation email.
type BookingConfirmationParams struct {
	To         string
	UserName   string
	MentorName string
	StartTime  string
	Timezone   string
}

// NewService creates a new SES service.
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:    ses.NewFromConfig(cfg),
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// Enabled reports whether a sender address is configured.
func (s *Service) Enabled() bool {
	return s.fromEmail != ""
}

// SendBookingConfirmation emails the invitee after a booking is created.
// Callers treat failures as best-effort.
func (s *Service) SendBookingConfirmation(ctx context.Context, params BookingConfirmationParams) error {
	if !s.Enabled() {
		return nil
	}

	htmlBody, err := renderBookingConfirmationHTML(params)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Your call is booked"
	if params.MentorName != "" {
		subject = fmt.Sprintf("Your call with %s is booked", params.MentorName)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(htmlBody),
					Charset: aws.String("UTF-8"),
				},
				Text: &types.Content{
					Data:    aws.String(renderBookingConfirmationText(params)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send booking confirmation",
			utils.String("to", params.To),
			utils.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Booking confirmation sent",
		utils.String("to", params.To),
		utils.String("messageId", aws.ToString(result.MessageId)),
	)

	return nil
}

// renderBookingConfirmationHTML renders the HTML email body.
func renderBookingConfirmationHTML(params BookingConfirmationParams) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .detail { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Call Booked</h1>
        <p>Hi {{.UserName}}, your call is confirmed</p>
    </div>
    <div class="content">
        <div class="detail">
            {{if .MentorName}}<p><strong>Mentor:</strong> {{.MentorName}}</p>{{end}}
            <p><strong>Starts:</strong> {{.StartTime}}</p>
            <p><strong>Timezone:</strong> {{.Timezone}}</p>
        </div>
        <p>You will receive a calendar invitation with the join link shortly.</p>
    </div>
    <div class="footer">
        <p>This email was sent by Connectly</p>
    </div>
</body>
</html>`

	t, err := template.New("booking_confirmation").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderBookingConfirmationText renders the plain text version.
func renderBookingConfirmationText(params BookingConfirmationParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.UserName))
	if params.MentorName != "" {
		buf.WriteString(fmt.Sprintf("Your call with %s is confirmed.\n\n", params.MentorName))
	} else {
		buf.WriteString("Your call is confirmed.\n\n")
	}
	buf.WriteString(fmt.Sprintf("Starts: %s (%s)\n\n", params.StartTime, params.Timezone))
	buf.WriteString("You will receive a calendar invitation with the join link shortly.\n\n")
	buf.WriteString("Best regards,\nConnectly Team\n")

	return buf.String()
}
