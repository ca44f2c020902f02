// Package ses provides email delivery of cost reports via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "car-cost-engine/internal/config"
	"car-cost-engine/internal/models"
	"car-cost-engine/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// CostReportParams contains data for a cost report email
type CostReportParams struct {
	To         string
	ProfileKey string
	Breakdown  models.CostBreakdown
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := ses.NewFromConfig(cfg)

	return &Service{
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	// Add HTML body if provided
	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	// Add text body if provided
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	// Add reply-to
	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendCostReport sends a cost breakdown summary email
func (s *Service) SendCostReport(ctx context.Context, params CostReportParams) (*SendEmailResult, error) {
	htmlBody, err := renderCostReportHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := renderCostReportText(params)
	subject := fmt.Sprintf("Your annual car cost estimate: %d kr/year", params.Breakdown.TotalAnnual)

	return s.SendEmail(ctx, EmailParams{
		To:       params.To,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

var costReportTemplate = template.Must(template.New("cost_report").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1b3a5c; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        table { width: 100%; border-collapse: collapse; background: white; border-radius: 8px; }
        td { padding: 10px 15px; border-bottom: 1px solid #eee; }
        td.amount { text-align: right; font-weight: bold; }
        tr.total td { border-top: 2px solid #1b3a5c; font-size: 18px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Annual Car Cost Estimate</h1>
        <p>Profile: {{.ProfileKey}}</p>
    </div>
    <div class="content">
        <table>
            <tr><td>Fuel</td><td class="amount">{{.Breakdown.Fuel}} kr</td></tr>
            <tr><td>Depreciation</td><td class="amount">{{.Breakdown.Depreciation}} kr</td></tr>
            <tr><td>Tax</td><td class="amount">{{.Breakdown.Tax}} kr</td></tr>
            <tr><td>Maintenance</td><td class="amount">{{.Breakdown.Maintenance}} kr</td></tr>
            <tr><td>Tires</td><td class="amount">{{.Breakdown.Tires}} kr</td></tr>
            <tr><td>Insurance</td><td class="amount">{{.Breakdown.Insurance}} kr</td></tr>
            <tr><td>Parking</td><td class="amount">{{.Breakdown.Parking}} kr</td></tr>
            <tr><td>Washing &amp; care</td><td class="amount">{{.Breakdown.WashingCare}} kr</td></tr>
            <tr><td>Financing</td><td class="amount">{{.Breakdown.Financing}} kr</td></tr>
            <tr class="total"><td>Total per year</td><td class="amount">{{.Breakdown.TotalAnnual}} kr</td></tr>
            <tr><td>Per month</td><td class="amount">{{.Breakdown.MonthlyTotal}} kr</td></tr>
            <tr><td>Per mil</td><td class="amount">{{.Breakdown.CostPerMil}} kr</td></tr>
            <tr><td>Per km</td><td class="amount">{{.Breakdown.CostPerKm}} kr</td></tr>
        </table>
    </div>
    <div class="footer">
        <p>This estimate is based on the parameters you provided and simplified cost models.</p>
    </div>
</body>
</html>`))

// renderCostReportHTML renders the HTML email body
func renderCostReportHTML(params CostReportParams) (string, error) {
	var buf bytes.Buffer
	if err := costReportTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderCostReportText renders the plain text fallback body
func renderCostReportText(params CostReportParams) string {
	b := params.Breakdown
	return fmt.Sprintf(`Annual Car Cost Estimate (profile: %s)

Fuel:           %d kr
Depreciation:   %d kr
Tax:            %d kr
Maintenance:    %d kr
Tires:          %d kr
Insurance:      %d kr
Parking:        %d kr
Washing & care: %d kr
Financing:      %d kr

Total per year: %d kr
Per month:      %d kr
Per mil:        %d kr
Per km:         %s kr
`,
		params.ProfileKey,
		b.Fuel, b.Depreciation, b.Tax, b.Maintenance, b.Tires,
		b.Insurance, b.Parking, b.WashingCare, b.Financing,
		b.TotalAnnual, b.MonthlyTotal, b.CostPerMil, b.CostPerKm,
	)
}
