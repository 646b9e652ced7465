package moderation

// Config holds moderation queue settings.
type Config struct {
	// LookupConcurrency bounds the concurrent active record lookups of a duplicate queue load.
	LookupConcurrency int `mapstructure:"lookup_concurrency" default:"8"`
	// PlaceholderImage is shown when a record or its image cannot be resolved.
	PlaceholderImage string `mapstructure:"placeholder_image" default:"/static/placeholder.png"`
	// AuditPrefix is the object storage folder of the decision journal.
	AuditPrefix string `mapstructure:"audit_prefix" default:"audit"`
	// ImagePrefix is the object storage folder of uploaded images.
	ImagePrefix string `mapstructure:"image_prefix" default:"images"`
}
