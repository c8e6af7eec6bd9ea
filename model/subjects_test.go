package model

import "testing"

func TestSubjectsForExam(t *testing.T) {
	if got := len(SubjectsForExam(ExamGATE)); got != 12 {
		t.Fatalf("GATE should have 12 subjects, got %d", got)
	}
	if got := len(SubjectsForExam(ExamIITJEE)); got != 6 {
		t.Fatalf("IIT-JEE should have 6 subjects, got %d", got)
	}
}

func TestSubjectsForExam_DefaultsToGATE(t *testing.T) {
	unknown := SubjectsForExam("UPSC")
	gate := SubjectsForExam(ExamGATE)
	if len(unknown) != len(gate) {
		t.Fatalf("unknown exam must fall back to the GATE list")
	}
	if got := len(SubjectsForExam("")); got != 12 {
		t.Fatalf("missing exam must fall back to the GATE list, got %d subjects", got)
	}
}
