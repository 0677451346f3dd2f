// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness check",
                "responses": {"200": {"description": "data.status: ok", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}}
        },
        "/api/auth/register": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Register a new user",
                "parameters": [{"description": "Registration data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/auth/login": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Log in",
                "parameters": [{"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LoginSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["auth"], "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/events": {
            "get": {"produces": ["application/json"], "tags": ["events"], "summary": "List events",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 50)", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListEventsSuccessResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json", "multipart/form-data"], "produces": ["application/json"], "tags": ["events"], "summary": "Create an event",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData"},
                    {"type": "string", "name": "date", "in": "formData", "required": true},
                    {"type": "integer", "name": "capacity", "in": "formData", "required": true},
                    {"type": "file", "description": "Event image (max 20 MiB)", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Location header points at the new event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "413": {"description": "error.code: payload_too_large", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/events/{id}": {
            "get": {"produces": ["application/json"], "tags": ["events"], "summary": "Get an event by ID",
                "parameters": [{"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Delete an event",
                "parameters": [{"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/bookings": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["bookings"], "summary": "List bookings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListBookingsSuccessResponse"}}}}
        },
        "/api/bookings/book/{eventID}": {
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["bookings"], "summary": "Book an event",
                "parameters": [{"type": "integer", "description": "Event ID", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.BookingSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (event full or already booked)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/bookings/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Cancel a booking",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        },
        "/api/admin/ping": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["admin"], "summary": "Admin check",
                "responses": {
                    "200": {"description": "data contains message and username", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }}
        }
    },
    "definitions": {
        "helpers.APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "helpers.APIResponse": {"type": "object", "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "helpers.PaginationMeta": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total": {"type": "integer"}, "total_pages": {"type": "integer"}}},
        "domain.User": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"}, "mobile": {"type": "string"}, "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "domain.Event": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}, "description": {"type": "string"}, "date": {"type": "string", "example": "2025-06-01"}, "capacity": {"type": "integer"}, "image_path": {"type": "string"}, "created_at": {"type": "string"}}},
        "domain.Booking": {"type": "object", "properties": {"id": {"type": "integer"}, "event_id": {"type": "integer"}, "user_id": {"type": "integer"}, "code": {"type": "string"}, "qr_code_path": {"type": "string"}, "created_at": {"type": "string"}}},
        "controllers.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "mobile": {"type": "string"}, "password": {"type": "string"}}},
        "controllers.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "controllers.LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "token_type": {"type": "string"}, "user": {"$ref": "#/definitions/domain.User"}}},
        "controllers.LoginSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/controllers.LoginResponse"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.UserSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.User"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.EventSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Event"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.ListEventsResponse": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}, "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}}},
        "controllers.ListEventsSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/controllers.ListEventsResponse"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.BookingSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Booking"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.ListBookingsSuccessResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Booking"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and the JWT.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event Booking API",
	Description:      "Events, registration and seat booking with QR tickets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
