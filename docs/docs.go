// Package docs holds the OpenAPI document served at /swagger. It is kept in
// sync with the handler annotations by hand and registered with swag so
// gin-swagger can serve it.
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
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "User", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/mood-entries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "Record a mood",
                "parameters": [
                    {"description": "Mood entry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateMoodEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.MoodEntry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/mood-entries/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "Recent mood entries",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "integer", "description": "Max entries (default 7)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.MoodEntry"}}}
                }
            }
        },
        "/mood-entries/{userId}/range": {
            "get": {
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "Mood entries in a time range",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "RFC 3339 or YYYY-MM-DD (default now-7d)", "name": "start", "in": "query"},
                    {"type": "string", "description": "RFC 3339 or YYYY-MM-DD (default now)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.MoodEntry"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/thought-posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Recent community posts",
                "parameters": [
                    {"type": "integer", "description": "Max posts (default 10)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Cached ETag", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ThoughtPost"}}},
                    "304": {"description": "Not Modified"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Share a thought",
                "parameters": [
                    {"description": "Post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateThoughtPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ThoughtPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/thought-posts/{id}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Like a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ThoughtPost"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/self-care": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["self-care"],
                "summary": "Create today's checklist",
                "parameters": [
                    {"description": "Checklist", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateSelfCareRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SelfCareChecklist"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/self-care/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["self-care"],
                "summary": "Checklist for a day",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "ISO-8601 date (default today)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SelfCareChecklist"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["self-care"],
                "summary": "Tick items on a day's checklist, creating it if needed",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "ISO-8601 date (default today)", "name": "date", "in": "query"},
                    {"description": "Items", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SelfCarePatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SelfCareChecklist"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SelfCareChecklist"}}
                }
            }
        },
        "/self-care/{id}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["self-care"],
                "summary": "Update a checklist",
                "parameters": [
                    {"type": "integer", "description": "Checklist ID", "name": "id", "in": "path", "required": true},
                    {"description": "Items", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SelfCarePatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SelfCareChecklist"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Start a conversation",
                "parameters": [
                    {"description": "Conversation", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateChatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ChatConversation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chat/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Current conversation",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ChatConversation"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chat/{userId}/message": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Send a message to the companion",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SendChatMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ChatConversation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/quotes/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Random inspirational quote",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}}
                }
            }
        },
        "/quotes/generate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Generate a personalised quote",
                "parameters": [
                    {"type": "string", "description": "Context about the user", "name": "context", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}}
                }
            }
        },
        "/journal/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Analyze a journal entry",
                "parameters": [
                    {"description": "Journal text", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AnalyzeJournalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MoodAnalysis"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "displayName": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.MoodEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "mood": {"type": "string", "enum": ["happy", "calm", "neutral", "sad", "stressed"]},
                "note": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.ThoughtPost": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "content": {"type": "string"},
                "likes": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.SelfCarePatch": {
            "type": "object",
            "properties": {
                "water": {"type": "boolean"},
                "exercise": {"type": "boolean"},
                "sleep": {"type": "boolean"},
                "journal": {"type": "boolean"},
                "mindfulness": {"type": "boolean"}
            }
        },
        "domain.SelfCareChecklist": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "date": {"type": "string"},
                "water": {"type": "boolean"},
                "exercise": {"type": "boolean"},
                "sleep": {"type": "boolean"},
                "journal": {"type": "boolean"},
                "mindfulness": {"type": "boolean"}
            }
        },
        "domain.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant", "system"]},
                "content": {"type": "string"}
            }
        },
        "domain.ChatConversation": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/domain.ChatMessage"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Quote": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "author": {"type": "string"}
            }
        },
        "domain.MoodAnalysis": {
            "type": "object",
            "properties": {
                "suggestedMood": {"type": "string"},
                "insights": {"type": "string"}
            }
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "displayName": {"type": "string"}
            }
        },
        "handlers.CreateMoodEntryRequest": {
            "type": "object",
            "required": ["userId", "mood"],
            "properties": {
                "userId": {"type": "integer"},
                "mood": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "handlers.CreateThoughtPostRequest": {
            "type": "object",
            "required": ["userId", "content"],
            "properties": {
                "userId": {"type": "integer"},
                "content": {"type": "string"}
            }
        },
        "handlers.CreateSelfCareRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "integer"},
                "water": {"type": "boolean"},
                "exercise": {"type": "boolean"},
                "sleep": {"type": "boolean"},
                "journal": {"type": "boolean"},
                "mindfulness": {"type": "boolean"}
            }
        },
        "handlers.ChatMessageInput": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "handlers.CreateChatRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "integer"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/handlers.ChatMessageInput"}}
            }
        },
        "handlers.SendChatMessageRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/handlers.ChatMessageInput"}}
            }
        },
        "handlers.AnalyzeJournalRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "handlers.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/handlers.FieldError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Wellness Backend API",
	Description:      "Mood tracking, community posts, self-care checklists and an AI companion chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
