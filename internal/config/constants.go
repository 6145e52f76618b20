package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./quotedeck.db"

	// DefaultSyncEndpoint is the demo endpoint synced against when none is configured.
	// It echoes created records but does not persist them.
	DefaultSyncEndpoint = "https://jsonplaceholder.typicode.com/posts"

	// DefaultSyncSchedule runs a sync cycle every 30 seconds
	DefaultSyncSchedule = "*/30 * * * * *"

	// DefaultFetchLimit is the page size requested from the remote endpoint
	DefaultFetchLimit = 10
)
