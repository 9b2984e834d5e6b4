// Package docs registers the OpenAPI document served under /v1/swagger.
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
        "/contact_api.php": {
            "post": {
                "description": "Relays a contact form submission to the studio inbox and sends the submitter a confirmation.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Submit Contact Form",
                "parameters": [
                    {"type": "string", "description": "Full name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Email address", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone number", "name": "phone", "in": "formData", "required": true},
                    {"type": "string", "description": "Type of video", "name": "video_type", "in": "formData", "required": true},
                    {"type": "string", "description": "Project details", "name": "project_details", "in": "formData", "required": true},
                    {"type": "file", "description": "Reference file", "name": "reference_upload", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/v1/health": {
            "get": {
                "description": "Reports mail transport, Redis and scanner status. Degraded still answers 200.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/v1/pages": {
            "get": {
                "description": "Behavior options for every page served by the site script.",
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "List Page Profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/v1/pages/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Get Page Profile",
                "parameters": [
                    {"type": "string", "description": "Page name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "debug": {"type": "string"},
                "data": {},
                "request_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Easein Studio Contact Relay API",
	Description:      "Contact form relay and page behavior profiles for the Easein Studio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
