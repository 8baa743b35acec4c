package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Baula Sync",
        "description": "Incremental course-catalog synchronisation service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sync", "description": "Catalog synchronisation runs and reports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/sync/{semester}": {
            "post": {
                "tags": ["Sync"],
                "summary": "Start a catalog synchronisation run",
                "parameters": [
                    {"name": "semester", "in": "path", "required": true, "type": "string", "description": "Semester, e.g. 2026s"}
                ],
                "responses": {
                    "202": {"description": "Run enqueued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid semester", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Run already in progress", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/sync/{semester}/report": {
            "get": {
                "tags": ["Sync"],
                "summary": "Latest synchronisation report for a semester",
                "parameters": [
                    {"name": "semester", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SyncReport"}},
                    "404": {"description": "No report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/sync/{semester}/report/export": {
            "get": {
                "tags": ["Sync"],
                "summary": "Download a synchronisation report as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "semester", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"},
                    "400": {"description": "Invalid format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SyncReport": {
            "type": "object",
            "properties": {
                "semester": {"type": "string"},
                "startedAt": {"type": "string", "format": "date-time"},
                "finishedAt": {"type": "string", "format": "date-time"},
                "roomsUpserted": {"type": "integer"},
                "personsUpserted": {"type": "integer"},
                "coursesAdded": {"type": "integer"},
                "coursesUpdated": {"type": "integer"},
                "coursesDeleted": {"type": "integer"},
                "staffLinksAdded": {"type": "integer"},
                "competenceLinksAdded": {"type": "integer"},
                "moduleLinksAdded": {"type": "integer"},
                "errorCount": {"type": "integer"},
                "changeLog": {"type": "array", "items": {"type": "string"}},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/CourseFailure"}}
            }
        },
        "CourseFailure": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "message": {"type": "string"}
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
