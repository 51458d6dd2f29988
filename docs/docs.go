// Package docs holds the OpenAPI document built from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://codeberg.org/quickai/server"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/ai/generate-article": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate an article",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generate.ArticleRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.Envelope"}}
                }
            }
        },
        "/api/v1/ai/generate-blog-title": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate blog titles",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generate.BlogTitleRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.Envelope"}}
                }
            }
        },
        "/api/v1/ai/generate-image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate an image (premium)",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generate.ImageRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.Envelope"}}
                }
            }
        },
        "/api/v1/ai/remove-image-background": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Remove an image background (premium)",
                "parameters": [{"type": "file", "name": "image", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}}}
            }
        },
        "/api/v1/ai/remove-image-object": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Remove an object from an image (premium)",
                "parameters": [
                    {"type": "file", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "name": "object", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}}}
            }
        },
        "/api/v1/ai/resume-review": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Review a resume (premium)",
                "parameters": [{"type": "file", "name": "resume", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}}}
            }
        },
        "/api/v1/user/get-user-creations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List the caller's creations",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/users.CreationsResponse"}}}
            }
        },
        "/api/v1/user/get-published-creations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List published creations",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/users.CreationsResponse"}}}
            }
        },
        "/api/v1/user/toggle-like-creation": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Like or unlike a creation",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.ToggleLikeRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/errors.Envelope"}}}
            }
        },
        "/api/v1/user/usage": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get the caller's plan and free-tier usage",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UsageResponse"}}}
            }
        },
        "/api/v1/admin/users/{id}/plan": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change a user's plan",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/admin.SetPlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.UserPlanResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Response"}}
                }
            }
        }
    },
    "definitions": {
        "errors.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "content": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "generate.ArticleRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"},
                "length": {"type": "integer"}
            }
        },
        "generate.BlogTitleRequest": {
            "type": "object",
            "properties": {"prompt": {"type": "string"}}
        },
        "generate.ImageRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"},
                "publish": {"type": "boolean"}
            }
        },
        "users.CreationsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "creations": {"type": "array", "items": {"type": "object"}},
                "pagination": {"type": "object"}
            }
        },
        "users.ToggleLikeRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {"id": {"type": "string"}}
        },
        "users.UsageResponse": {
            "type": "object",
            "properties": {
                "plan": {"type": "string"},
                "free_usage": {"type": "integer"},
                "limit": {"type": "integer"},
                "remaining": {"type": "integer"}
            }
        },
        "admin.SetPlanRequest": {
            "type": "object",
            "required": ["plan"],
            "properties": {"plan": {"type": "string", "enum": ["free", "premium"]}}
        },
        "admin.UserPlanResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "plan": {"type": "string"},
                "free_usage": {"type": "integer"}
            }
        },
        "health.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authenticated requests. Format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "QuickAI API",
	Description:      "AI writing and image tools with a metered free tier",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
