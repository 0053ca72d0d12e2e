package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduIntel API",
        "description": "AI education gateway: analysis agents behind a human approval workflow",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Reviewer authentication"},
        {"name": "Analysis", "description": "AI analysis of student data"},
        {"name": "Approvals", "description": "Human review of AI decisions"},
        {"name": "Feedback", "description": "Feedback ledger and rating averages"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a reviewer",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/analysis/assessment": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Run an assessment analysis",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssessmentPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "502": {"description": "Model failure"},
                    "504": {"description": "Model timeout"}
                }
            }
        },
        "/analysis/learning-path": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Generate a personalized learning path",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LearningPathPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analysis/progress": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Analyze study progress",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgressPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analysis/recommendations": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Generate study recommendations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecommendationPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/approvals": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Submit an AI decision for review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateApprovalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/approvals/pending": {
            "get": {
                "tags": ["Approvals"],
                "summary": "List the pending review queue, oldest first",
                "parameters": [
                    {"name": "priority", "in": "query", "type": "string", "enum": ["low", "normal", "high", "urgent"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/approvals/export": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Export the pending queue or a student's history",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "studentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/approvals/student/{studentId}": {
            "get": {
                "tags": ["Approvals"],
                "summary": "List a student's approval history",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/approvals/{id}": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Get one approval request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown request"}
                }
            }
        },
        "/approvals/{id}/approve": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Approve a pending request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Request is not pending review"}
                }
            }
        },
        "/approvals/{id}/reject": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Reject a pending request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Request is not pending review"}
                }
            }
        },
        "/approvals/{id}/revision": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Send a pending request back for revision",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Request is not pending review"}
                }
            }
        },
        "/feedback": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Record feedback on a recommendation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitFeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/feedback/history/{studentId}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List a student's feedback history, oldest first",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feedback/rating/{recommendationId}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Get the average rating for a recommendation",
                "parameters": [
                    {"name": "recommendationId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AssessmentPayload": {
            "type": "object",
            "required": ["studentId", "studentName", "subject"],
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "subject": {"type": "string"},
                "difficultyLevel": {"type": "string"},
                "questionsCount": {"type": "integer"},
                "correctAnswers": {"type": "integer"},
                "incorrectAnswers": {"type": "integer"},
                "partialAnswers": {"type": "integer"}
            }
        },
        "LearningPathPayload": {
            "type": "object",
            "required": ["studentId", "studentName", "subject"],
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "subject": {"type": "string"},
                "skillLevel": {"type": "string"},
                "targetLevel": {"type": "string"},
                "learningStyle": {"type": "string"},
                "hoursPerWeek": {"type": "integer"},
                "weakAreas": {"type": "array", "items": {"type": "string"}},
                "strongAreas": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ProgressPayload": {
            "type": "object",
            "required": ["studentId", "studentName", "subject"],
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "subject": {"type": "string"},
                "initialScore": {"type": "number"},
                "currentScore": {"type": "number"},
                "assessmentsCompleted": {"type": "integer"},
                "studyWeeks": {"type": "integer"},
                "topicsCompleted": {"type": "integer"},
                "totalTopics": {"type": "integer"},
                "practiceHours": {"type": "number"},
                "dailyStudyMinutes": {"type": "integer"}
            }
        },
        "RecommendationPayload": {
            "type": "object",
            "required": ["studentId", "studentName", "subject"],
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "subject": {"type": "string"},
                "skillLevel": {"type": "string"},
                "learningStyle": {"type": "string"},
                "weakAreas": {"type": "array", "items": {"type": "string"}},
                "strongAreas": {"type": "array", "items": {"type": "string"}},
                "careerInterests": {"type": "string"},
                "hoursPerWeek": {"type": "integer"},
                "previousAssessments": {"type": "integer"}
            }
        },
        "CreateApprovalRequest": {
            "type": "object",
            "required": ["studentId", "decisionType", "decisionData"],
            "properties": {
                "studentId": {"type": "string"},
                "decisionType": {"type": "string", "enum": ["assessment", "learning_path", "progress", "recommendation"]},
                "decisionData": {"type": "object"},
                "priority": {"type": "string", "enum": ["low", "normal", "high", "urgent"]}
            }
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "comments": {"type": "string"}
            }
        },
        "SubmitFeedbackRequest": {
            "type": "object",
            "required": ["studentId", "recommendationId", "feedbackType"],
            "properties": {
                "studentId": {"type": "string"},
                "recommendationId": {"type": "string"},
                "feedbackType": {"type": "string", "enum": ["positive", "negative", "neutral"]},
                "comments": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
