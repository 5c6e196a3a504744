// internal/workers/data-access/query-institutions/models.go
package queryinstitutions

type Input struct {
	QueryType      string                 `json:"queryType"`
	InstitutionKey string                 `json:"institutionKey,omitempty"`
	State          string                 `json:"state,omitempty"`
	Filters        map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"`
}
