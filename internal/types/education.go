package types

// Education levels recognized by the extractors, highest first.
// An empty string means no level was detected or required.
const (
	EducationPhD      = "phd"
	EducationMaster   = "master"
	EducationBachelor = "bachelor"
	EducationDiploma  = "diploma"
)

// educationRank orders education levels for compatibility comparison:
// phd > master > bachelor > diploma > none.
var educationRank = map[string]int{
	EducationPhD:      4,
	EducationMaster:   3,
	EducationBachelor: 2,
	EducationDiploma:  1,
}

// EducationRank returns the numeric rank of an education level.
// Unknown or empty levels rank 0.
func EducationRank(level string) int {
	return educationRank[level]
}
