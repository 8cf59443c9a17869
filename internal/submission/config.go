package submission

// Config holds environment-driven pipeline settings.
type Config struct {
	// Collection is the store collection submissions are persisted in.
	Collection string `env:"MONGODB_COLLECTION" envDefault:"submissions"`
	// Subject is the fixed subject line of the notification email.
	Subject string `env:"PIPELINE_EMAIL_SUBJECT" envDefault:"Your Submission Received"`
	// RecipientFields are dotted payload paths probed for the recipient address.
	RecipientFields []string `env:"PIPELINE_RECIPIENT_FIELDS" envSeparator:"," envDefault:"email,contact.email"`
	// FallbackRecipient receives notifications when the payload names nobody.
	// Leave empty to make unresolvable submissions terminate as no_recipient.
	FallbackRecipient string `env:"PIPELINE_FALLBACK_RECIPIENT"`
}
