// Package docs registers the OpenAPI description served at /swagger.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/arts": {
            "get": {
                "description": "Returns artworks newest first. Both filters are exact matches.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "List artworks",
                "parameters": [
                    {"type": "string", "example": "Public", "description": "Visibility filter", "name": "visibility", "in": "query"},
                    {"type": "string", "description": "Owner email filter", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores an artwork document. likes defaults to 0 and createdAt is set by the server.\nWith an Idempotency-Key header, a retried request returns the id created first.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Create an artwork",
                "parameters": [
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Artwork fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.InsertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/arts/{id}": {
            "get": {
                "description": "Returns the artwork, or null when no artwork has this id.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Get an artwork",
                "parameters": [{"type": "string", "description": "Artwork ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Favourites and reviews of the artwork are kept.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Delete an artwork",
                "parameters": [{"type": "string", "description": "Artwork ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeletedResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.DeletedResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Sets every supplied field. _id, likes and createdAt are ignored.\nmodifiedCount is 0 when the artwork is missing or nothing changed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Update an artwork",
                "parameters": [
                    {"type": "string", "description": "Artwork ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to set", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ModifiedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/arts/{id}/like": {
            "patch": {
                "description": "Atomically increments likes by one.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Like an artwork",
                "parameters": [{"type": "string", "description": "Artwork ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ModifiedResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/my-arts": {
            "get": {
                "description": "Returns the artworks created by email, or [] when email is missing.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "List an owner's artworks",
                "parameters": [{"type": "string", "description": "Owner email", "name": "email", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/featured": {
            "get": {
                "description": "Returns up to six public artworks, newest first.",
                "produces": ["application/json"],
                "tags": ["arts"],
                "summary": "Featured artworks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/favourites": {
            "get": {
                "description": "Returns the user's favourites, or [] when email is missing.",
                "produces": ["application/json"],
                "tags": ["favourites"],
                "summary": "List favourites",
                "parameters": [{"type": "string", "description": "User email", "name": "email", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Favourite"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Adding an existing pair answers 200 with already=true and writes nothing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["favourites"],
                "summary": "Favourite an artwork",
                "parameters": [{"description": "Favourite", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddFavouriteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/favourites/check": {
            "get": {
                "description": "exists is false when either parameter is missing.",
                "produces": ["application/json"],
                "tags": ["favourites"],
                "summary": "Check a favourite",
                "parameters": [
                    {"type": "string", "description": "User email", "name": "email", "in": "query"},
                    {"type": "string", "description": "Artwork ID", "name": "artId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ExistsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/favourites/{artworkId}": {
            "delete": {
                "description": "Succeeds whether or not the pair existed.",
                "produces": ["application/json"],
                "tags": ["favourites"],
                "summary": "Remove a favourite",
                "parameters": [
                    {"type": "string", "description": "Artwork ID", "name": "artworkId", "in": "path", "required": true},
                    {"type": "string", "description": "User email", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeletedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews": {
            "get": {
                "description": "Returns an artwork's reviews newest first, or [] when artworkId is missing.",
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews",
                "parameters": [{"type": "string", "description": "Artwork ID", "name": "artworkId", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "rating must be 1 to 5 and comment at least 10 characters after trimming.\nA second review by the same user answers 200 with already=true.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Submit a review",
                "parameters": [{"description": "Review", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateReviewRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.InsertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "description": "name needs 2 characters, email a simple address shape, message 10 characters.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Send a contact message",
                "parameters": [{"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ContactRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Favourite": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "artworkId": {"type": "string"},
                "createdAt": {"type": "string"},
                "userEmail": {"type": "string"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "artworkId": {"type": "string"},
                "comment": {"type": "string"},
                "createdAt": {"type": "string"},
                "rating": {"type": "integer"},
                "userEmail": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "handlers.AddFavouriteRequest": {
            "type": "object",
            "properties": {
                "artworkId": {"type": "string", "example": "6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"},
                "userEmail": {"type": "string", "example": "riz@example.com"}
            }
        },
        "handlers.ContactRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "riz@example.com"},
                "message": {"type": "string", "example": "I would like to buy a print."},
                "name": {"type": "string", "example": "Riz"}
            }
        },
        "handlers.CreateReviewRequest": {
            "type": "object",
            "properties": {
                "artworkId": {"type": "string", "example": "6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"},
                "comment": {"type": "string", "example": "Beautiful use of colour."},
                "rating": {"type": "integer", "example": 5},
                "userEmail": {"type": "string", "example": "riz@example.com"},
                "userName": {"type": "string", "example": "Riz"}
            }
        },
        "handlers.DeletedResponse": {
            "type": "object",
            "properties": {
                "deletedCount": {"type": "integer", "example": 1},
                "message": {"type": "string", "example": "Not found"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "bad_request"},
                "message": {"type": "string", "example": "Missing userEmail or artworkId"},
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handlers.ExistsResponse": {
            "type": "object",
            "properties": {
                "exists": {"type": "boolean", "example": true}
            }
        },
        "handlers.InsertResponse": {
            "type": "object",
            "properties": {
                "insertedId": {"type": "string", "example": "6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.ModifiedResponse": {
            "type": "object",
            "properties": {
                "modifiedCount": {"type": "integer", "example": 1},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.SuccessResponse": {
            "type": "object",
            "properties": {
                "already": {"type": "boolean", "example": true},
                "success": {"type": "boolean", "example": true}
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
	Title:            "Creovate API",
	Description:      "Art gallery backend: artworks, favourites, reviews and contact messages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
