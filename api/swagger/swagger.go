package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Interview Scheduler API",
        "description": "Career day interview scheduling: rosters, constraint solving, validation and exports",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Career day event management"},
        {"name": "Students", "description": "Candidate rosters"},
        {"name": "Interviewers", "description": "Interviewer rosters"},
        {"name": "Solver", "description": "Schedule solving and validation"},
        {"name": "Schedules", "description": "Stored schedules and exports"}
    ],
    "paths": {
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event with rosters and schedules",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/events/{id}/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List event students",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add student to roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name"}
                }
            }
        },
        "/events/{id}/students/bulk": {
            "put": {
                "tags": ["Students"],
                "summary": "Replace student roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkStudentsPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/events/{id}/interviewers": {
            "get": {
                "tags": ["Interviewers"],
                "summary": "List event interviewers",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "virtual", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Interviewers"],
                "summary": "Add interviewer to roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InterviewerPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/interviewers/bulk": {
            "put": {
                "tags": ["Interviewers"],
                "summary": "Replace interviewer roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkInterviewersPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/interviewers/{id}": {
            "put": {
                "tags": ["Interviewers"],
                "summary": "Update interviewer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InterviewerPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Interviewers"],
                "summary": "Remove interviewer",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/solve": {
            "post": {
                "tags": ["Solver"],
                "summary": "Solve an ad hoc scheduling scenario",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SolvePayload"}}
                ],
                "responses": {
                    "200": {"description": "Feasible schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Infeasible demand or no solution"},
                    "504": {"description": "Search budget exhausted"}
                }
            }
        },
        "/events/{id}/solve": {
            "post": {
                "tags": ["Solver"],
                "summary": "Solve from an event's stored rosters",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SolveEventPayload"}}
                ],
                "responses": {
                    "200": {"description": "Feasible schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Infeasible demand or no solution"},
                    "504": {"description": "Search budget exhausted"}
                }
            }
        },
        "/validate": {
            "post": {
                "tags": ["Solver"],
                "summary": "Validate a schedule against a scenario",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidatePayload"}}
                ],
                "responses": {
                    "200": {"description": "Validation result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List stored schedules",
                "parameters": [
                    {"name": "event", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get stored schedule",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete stored schedule",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/events/{id}/schedule": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get the latest schedule for an event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No schedule yet"}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Save an externally produced schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSchedulePayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete every stored schedule for an event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Deleted count", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/export/csv": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export schedule view as CSV",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "view", "in": "query", "type": "string", "enum": ["students", "interviewers"]}
                ],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/schedules/{id}/export/pdf": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export schedule view as PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "view", "in": "query", "type": "string", "enum": ["students", "interviewers"]}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        }
    },
    "definitions": {
        "EventPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "event_date": {"type": "string"},
                "num_slots": {"type": "integer"},
                "default_target": {"type": "integer"},
                "breaks_min": {"type": "integer"},
                "breaks_max": {"type": "integer"},
                "min_virtual_per_student": {"type": "integer"},
                "max_virtual_per_student": {"type": "integer"}
            }
        },
        "StudentPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "target": {"type": "integer"}
            }
        },
        "BulkStudentsPayload": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentPayload"}}
            }
        },
        "InterviewerPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "is_virtual": {"type": "boolean"}
            }
        },
        "BulkInterviewersPayload": {
            "type": "object",
            "properties": {
                "interviewers": {"type": "array", "items": {"$ref": "#/definitions/InterviewerPayload"}}
            }
        },
        "SolvePayload": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentPayload"}},
                "interviewers": {"type": "array", "items": {"$ref": "#/definitions/InterviewerPayload"}},
                "num_slots": {"type": "integer"},
                "default_target": {"type": "integer"},
                "breaks_min": {"type": "integer"},
                "breaks_max": {"type": "integer"},
                "min_virtual_per_student": {"type": "integer"},
                "max_virtual_per_student": {"type": "integer"},
                "seed": {"type": "integer"},
                "auto_balance": {"type": "boolean"},
                "time_budget_seconds": {"type": "integer"}
            }
        },
        "SolveEventPayload": {
            "type": "object",
            "properties": {
                "seed": {"type": "integer"},
                "auto_balance": {"type": "boolean"},
                "time_budget_seconds": {"type": "integer"}
            }
        },
        "SaveSchedulePayload": {
            "type": "object",
            "properties": {
                "schedule": {"type": "object"},
                "interviewer_schedule": {"type": "object"},
                "interviewer_assignments": {"type": "array", "items": {"type": "object"}},
                "seed": {"type": "integer"}
            }
        },
        "ValidatePayload": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentPayload"}},
                "interviewers": {"type": "array", "items": {"$ref": "#/definitions/InterviewerPayload"}},
                "num_slots": {"type": "integer"},
                "schedule": {"type": "object"},
                "interviewer_schedule": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
