package cache

import "fmt"

const (
	// DirectoryFamily versions the unfiltered creator list.
	DirectoryFamily = "directory"
	// RecommendationsFamily versions every per-brief recommendation entry.
	RecommendationsFamily = "recommendations"
)

// DirectoryKey addresses the unfiltered creator list, newest first, under a generation.
func DirectoryKey(generation int64) string {
	return fmt.Sprintf("%s:%d:creators", DirectoryFamily, generation)
}

// RecommendationsKey addresses one brief's recommendations under a generation.
// The brief status is part of the key since only open briefs are scored.
func RecommendationsKey(generation int64, briefID, status string, limit int) string {
	return fmt.Sprintf("%s:%d:%s:%s:%d", RecommendationsFamily, generation, briefID, status, limit)
}
