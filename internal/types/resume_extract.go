package types

// ResumeExtract holds the structured signals derived from a résumé's
// normalized text. Extraction never fails: absent signals yield empty
// slices and strings, never nil containers.
type ResumeExtract struct {
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience string   `json:"experience"`
}
