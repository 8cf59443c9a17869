package email

import "fmt"

// Provider selects the outbound email transport.
type Provider string

const (
	ProviderPostmark Provider = "postmark" // transactional API
	ProviderSMTP     Provider = "smtp"     // direct SMTP
	ProviderDev      Provider = "dev"      // writes emails to disk
)

// Config holds email service configuration. Provider-specific fields are only
// required when the matching provider is selected, which keeps development
// environments free of production credentials.
type Config struct {
	Provider    Provider `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	SenderEmail string   `env:"SENDER_EMAIL,required"`
	SenderName  string   `env:"SENDER_NAME" envDefault:"Submitd"`

	// Postmark (transactional API)
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	// SMTP (direct)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Dev sender output directory
	DevOutputDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// NewSender creates the Sender matching cfg.Provider.
func NewSender(cfg Config) (Sender, error) {
	switch cfg.Provider {
	case ProviderPostmark:
		return NewPostmarkSender(cfg)
	case ProviderSMTP:
		return NewSMTPSender(cfg)
	case ProviderDev:
		return NewDevSender(cfg.DevOutputDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
