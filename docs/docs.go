// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
		"/api/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register",
				"parameters": [
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								},
								"token": {
									"type": "string"
								},
								"user": {
									"$ref": "#/definitions/models.User"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/api/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"parameters": [
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								},
								"user": {
									"$ref": "#/definitions/models.User"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/api/profile": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current identity",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"user": {
									"$ref": "#/definitions/models.User"
								}
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/api/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Logout",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								}
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups": {
			"get": {
				"tags": [
					"groups"
				],
				"summary": "List groups",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Group"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			},
			"post": {
				"tags": [
					"groups"
				],
				"summary": "Create a group",
				"parameters": [
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.createGroupRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Group"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups/{groupId}/join": {
			"post": {
				"tags": [
					"groups"
				],
				"summary": "Join a group",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								},
								"group": {
									"$ref": "#/definitions/models.Group"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups/{groupId}/posts": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "List a group's posts",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Post"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			},
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Create a post",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.postRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Post"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups/{groupId}/posts/{postId}": {
			"put": {
				"tags": [
					"posts"
				],
				"summary": "Edit a post",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Post ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.postRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Post"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"posts"
				],
				"summary": "Delete a post and its comments",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Post ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups/{groupId}/posts/{postId}/comments": {
			"post": {
				"tags": [
					"comments"
				],
				"summary": "Comment on a post",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Post ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.commentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Comment"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		},
		"/community/groups/{groupId}/posts/{postId}/comments/{commentId}": {
			"put": {
				"tags": [
					"comments"
				],
				"summary": "Edit a comment",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Post ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Comment ID",
						"name": "commentId",
						"in": "path",
						"required": true
					},
					{
						"description": "Request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/server.commentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Comment"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"comments"
				],
				"summary": "Delete a comment",
				"parameters": [
					{
						"type": "integer",
						"description": "Group ID",
						"name": "groupId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Post ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Comment ID",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"message": {
									"type": "string"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"models.ErrorResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"code": {
					"type": "string"
				}
			}
		},
		"models.User": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"models.Group": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "integer"
				},
				"groupName": {
					"type": "string"
				},
				"serverBio": {
					"type": "string"
				},
				"creator": {
					"type": "integer"
				},
				"members": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"models.CommentAuthor": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"models.Comment": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "integer"
				},
				"post": {
					"type": "integer"
				},
				"authorId": {
					"type": "integer"
				},
				"user": {
					"$ref": "#/definitions/models.CommentAuthor"
				},
				"body": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"models.Post": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "integer"
				},
				"group": {
					"type": "integer"
				},
				"authorId": {
					"type": "integer"
				},
				"author": {
					"$ref": "#/definitions/models.User"
				},
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"comments": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Comment"
					}
				},
				"commentsCount": {
					"type": "integer"
				},
				"score": {
					"type": "integer"
				},
				"userVote": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"server.registerRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"server.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"server.createGroupRequest": {
			"type": "object",
			"properties": {
				"groupName": {
					"type": "string"
				},
				"serverBio": {
					"type": "string"
				}
			}
		},
		"server.postRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			}
		},
		"server.commentRequest": {
			"type": "object",
			"properties": {
				"body": {
					"type": "string"
				},
				"text": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Forum API",
	Description:	  "Groups, posts and comments with cookie sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
