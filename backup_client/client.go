package backup_client

// Source tells the backup system what to snapshot.
type Source struct {
	Account   string `json:"account"`
	Container string `json:"container"`
}

// Client is the external backup system boundary. Both calls are idempotent
// on the remote side: registering an existing job updates it, deregistering
// a missing job succeeds.
type Client interface {
	Register(name string, source Source) error
	Deregister(name string) error
}
