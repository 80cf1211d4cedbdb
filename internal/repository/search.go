package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// searchRegex builds the case-insensitive substring matcher used by list
// filters. User input is quoted so regex metacharacters match literally
// instead of breaking the query.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
