package models

// SourceData is what a single data source returns for a query
type SourceData struct {
	Floats   []Float   `json:"floats"`
	Profiles []Profile `json:"profiles"`
}

// CombinedResult merges the data of every source that answered a query.
// Errors holds one entry per source that failed, in source order.
type CombinedResult struct {
	Floats   []Float
	Profiles []Profile
	Errors   []error
}

// ErrorMessages flattens Errors for serialization
func (r *CombinedResult) ErrorMessages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		messages = append(messages, err.Error())
	}
	return messages
}

// Partial reports whether at least one source failed
func (r *CombinedResult) Partial() bool {
	return len(r.Errors) > 0
}
