package schemas

// DocumentSchema describes the CV document shape expected from profile
// extraction. Every entry carries a non-empty id so later edits and merges
// have a stable target.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["personalInfo", "summary", "experience", "education", "skills"],
  "properties": {
    "personalInfo": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "jobTitle": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "linkedin": {"type": "string"},
        "github": {"type": "string"},
        "address": {"type": "string"}
      }
    },
    "summary": {"type": "string"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "jobTitle": {"type": "string"},
          "company": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "school": {"type": "string"},
          "degree": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"}
        }
      }
    },
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"}
        }
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "role": {"type": "string"},
          "context": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

// AnalysisSchema describes the ATS analysis report shape.
const AnalysisSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["matchScore", "summary", "matchingKeywords", "missingKeywords", "actionableFeedback"],
  "properties": {
    "matchScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "summary": {"type": "string"},
    "matchingKeywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "missingKeywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "actionableFeedback": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

// ValidateDocument checks a JSON payload against the CV document schema.
func ValidateDocument(jsonContent string) error {
	return ValidateJSONString(DocumentSchema, jsonContent)
}

// ValidateAnalysis checks a JSON payload against the analysis report schema.
func ValidateAnalysis(jsonContent string) error {
	return ValidateJSONString(AnalysisSchema, jsonContent)
}
