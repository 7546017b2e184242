package email

// Config holds mail settings. Postmark tokens may be empty in development,
// in which case a DevSender is used.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@regform.local" validate:"required,email"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@regform.local" validate:"required,email"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/mail"`
}
