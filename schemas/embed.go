// Package schemas holds the JSON Schemas for recommender request documents.
package schemas

import "embed"

// Schema file names.
const (
	Entity           = "entity.schema.json"
	EntityList       = "entity_list.schema.json"
	RecommendRequest = "recommend_request.schema.json"
	BatchRequest     = "batch_request.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// All lists the schema file names in FS.
func All() []string {
	return []string{Entity, EntityList, RecommendRequest, BatchRequest}
}
