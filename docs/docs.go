// Package docs holds the generated OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/companies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["companies"],
                "summary": "List companies",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["companies"],
                "summary": "Register a company",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/companies/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["companies"],
                "summary": "Get a company",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/vehicles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vehicles"],
                "summary": "List vehicles",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vehicles"],
                "summary": "Create a vehicle",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/vehicles/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["vehicles"],
                "summary": "Update a vehicle",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/trips": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["trips"],
                "summary": "List trips",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trips"],
                "summary": "Request a trip",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/trips/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["trips"],
                "summary": "Get a trip",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["trips"],
                "summary": "Update a trip",
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["trips"],
                "summary": "Delete a trip",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
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
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cabrix Dispatch API",
	Description:      "Corporate trip dispatch: companies register, employees request trips, admins assign drivers and vehicles, drivers run the lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
