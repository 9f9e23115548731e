// Package constants holds configuration enum values shared by infra providers.
package constants

const (
	// EnvDevelop is the development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal posts events to a local HTTP endpoint in Pub/Sub push format.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// RealtimeProviderMemory keeps the realtime store in process memory.
	RealtimeProviderMemory = "memory"
	// RealtimeProviderFirebase uses Firebase Realtime Database.
	RealtimeProviderFirebase = "firebase"
)

const (
	// RatingStrategyTransaction runs the already-rated check and the write as one store transaction.
	RatingStrategyTransaction = "transaction"
	// RatingStrategyMultiPath checks the held product copy, then issues an atomic multi-path update.
	RatingStrategyMultiPath = "multiPath"
)
