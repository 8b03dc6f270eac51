package entities

// NetworkState is the observed state of an interface after an apply.
// It is a report only: verification never rolls back on mismatch.
type NetworkState struct {
	Interface   string
	Up          bool
	Addresses   []string
	Routes      []string
	Nameservers []string
}
