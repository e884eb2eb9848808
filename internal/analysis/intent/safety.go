package intent

import "strings"

// SafetyMessage redirects medical questions to a professional.
const SafetyMessage = "⚠️ I can't help with medical issues, symptoms, or diagnoses. Please consult a healthcare professional or emergency services if needed."

var medicalKeywords = []string{
	"pain", "chest pain", "symptom", "diagnosis", "medication", "emergency",
	"sick", "fever", "infection", "disease", "doctor", "prescription",
	"treatment", "injury", "blood", "surgery",
}

// IsUnsafe reports whether the text mentions a medical-risk term, ignoring case.
func IsUnsafe(text string) bool {
	return containsAny(strings.ToLower(text), medicalKeywords)
}
