package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AWS Community Day 2026 API",
        "description": "Public content, forms and organizer back office for the community conference.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Public", "description": "Cached listings shown on the website"},
        {"name": "Forms", "description": "Contact and volunteer submissions"},
        {"name": "Authentication", "description": "Organizer sign in"},
        {"name": "Schedules", "description": "Agenda management with per-track conflict checks"},
        {"name": "Sponsors", "description": "Sponsor board and ordering"},
        {"name": "Exports", "description": "Signed CSV and PDF downloads"}
    ],
    "paths": {
        "/schedule": {
            "get": {
                "tags": ["Public"],
                "summary": "Agenda grid",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/sponsors": {
            "get": {
                "tags": ["Public"],
                "summary": "Sponsors grouped by tier",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/speakers": {
            "get": {
                "tags": ["Public"],
                "summary": "Speakers",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/tickets": {
            "get": {
                "tags": ["Public"],
                "summary": "Ticket tiers with remaining capacity",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/faqs": {
            "get": {
                "tags": ["Public"],
                "summary": "FAQs grouped by category",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/event": {
            "get": {
                "tags": ["Public"],
                "summary": "Event details and countdown",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/seo/{page}": {
            "get": {
                "tags": ["Public"],
                "summary": "Meta tags and structured data for a page",
                "parameters": [{"name": "page", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown page", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["Forms"],
                "summary": "Send a contact message",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactMessage"}}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Relay failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/volunteers": {
            "post": {
                "tags": ["Forms"],
                "summary": "Apply as a volunteer",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VolunteerApplication"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign in",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedule entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "time_slot", "in": "query", "type": "string"},
                    {"name": "track", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Track already occupied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/schedules/available-tracks": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Free tracks for a time slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "time_slot", "in": "query", "type": "string"},
                    {"name": "start_time", "in": "query", "type": "string"},
                    {"name": "end_time", "in": "query", "type": "string"},
                    {"name": "exclude_id", "in": "query", "type": "string"},
                    {"name": "current", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/sponsors/reorder": {
            "post": {
                "tags": ["Sponsors"],
                "summary": "Move a sponsor within the displayed list",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SponsorReorderRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Displayed list is stale", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Order not saved, board reverted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/exports/{kind}": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export schedule or volunteers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["schedule", "volunteers"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Link invalid or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ContactMessage": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["name", "email", "subject", "message"]
        },
        "VolunteerApplication": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "availability": {"type": "array", "items": {"type": "string"}},
                "experience_level": {"type": "string"},
                "motivation": {"type": "string"},
                "photo_url": {"type": "string"}
            },
            "required": ["name", "email", "role", "availability", "motivation"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ScheduleInput": {
            "type": "object",
            "properties": {
                "start_time": {"type": "string", "example": "2026-02-28T09:00"},
                "end_time": {"type": "string", "example": "2026-02-28T09:45"},
                "track_number": {"type": "integer", "minimum": 1, "maximum": 3},
                "title": {"type": "string"},
                "speaker": {"type": "string"},
                "room": {"type": "string"}
            },
            "required": ["start_time", "end_time", "track_number", "title"]
        },
        "SponsorReorderRequest": {
            "type": "object",
            "properties": {
                "displayed_ids": {"type": "array", "items": {"type": "string"}},
                "sponsor_id": {"type": "string"},
                "target_index": {"type": "integer"}
            },
            "required": ["displayed_ids", "sponsor_id"]
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
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
