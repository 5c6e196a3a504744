// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeInstitutionRecord    QueryType = "institution_record"
	QueryTypeInstitutionDirectory QueryType = "institution_directory"
	QueryTypeInstitutionCorpus    QueryType = "institution_corpus"
)
