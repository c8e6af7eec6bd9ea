package model

const (
	ExamGATE   = "GATE"
	ExamIITJEE = "IIT-JEE"
)

// ExamSubjects maps an exam type to its subject set.
var ExamSubjects = map[string][]string{
	ExamGATE: {
		"Engineering Mathematics",
		"Digital Logic",
		"Computer Organization",
		"Programming & DS",
		"Algorithms",
		"Theory of Computation",
		"Compiler Design",
		"Operating Systems",
		"Databases",
		"Computer Networks",
		"General",
		"Discrete Mathematics",
	},
	ExamIITJEE: {
		"Physics Class 11",
		"Maths Class 11",
		"Chemistry Class 11",
		"Physics Class 12",
		"Maths Class 12",
		"Chemistry Class 12",
	},
}

// SubjectsForExam returns the subject set for an exam type, falling back to
// the GATE list for unknown or missing exam types.
func SubjectsForExam(exam string) []string {
	if subjects, ok := ExamSubjects[exam]; ok {
		return subjects
	}
	return ExamSubjects[ExamGATE]
}
