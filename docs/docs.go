// Package docs holds the Swagger document served at /swagger.
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
        "/": {
            "get": {
                "summary": "Catalog listing",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                },
                "description": "Lists every product, or those whose name contains search.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "substring of the product name",
                        "name": "search",
                        "in": "query"
                    }
                ]
            }
        },
        "/product/{id}": {
            "get": {
                "summary": "Product detail",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "product id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/add": {
            "post": {
                "summary": "Add a product (sellers only)",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "product name",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "price in major units",
                        "name": "price",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "image reference",
                        "name": "image_url",
                        "in": "formData",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "description",
                        "name": "description",
                        "in": "formData",
                        "required": false
                    }
                ],
                "consumes": [
                    "application/x-www-form-urlencoded"
                ]
            }
        },
        "/edit_product/{id}": {
            "post": {
                "summary": "Edit a product (sellers only)",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "product id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "product name",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "price in major units",
                        "name": "price",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "image reference",
                        "name": "image_url",
                        "in": "formData",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "description",
                        "name": "description",
                        "in": "formData",
                        "required": false
                    }
                ],
                "consumes": [
                    "application/x-www-form-urlencoded"
                ]
            }
        },
        "/delete_product/{id}": {
            "get": {
                "summary": "Delete a product (sellers only)",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "product id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/register": {
            "post": {
                "summary": "Register an account",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "unique username",
                        "name": "username",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "password",
                        "name": "password",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "buyer (default) or seller",
                        "name": "role",
                        "in": "formData",
                        "required": false
                    }
                ],
                "consumes": [
                    "application/x-www-form-urlencoded"
                ]
            }
        },
        "/login": {
            "post": {
                "summary": "Log in",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "username",
                        "name": "username",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "password",
                        "name": "password",
                        "in": "formData",
                        "required": true
                    }
                ],
                "consumes": [
                    "application/x-www-form-urlencoded"
                ]
            }
        },
        "/add_to_cart/{id}": {
            "get": {
                "summary": "Add one unit of a product to the session cart",
                "tags": [
                    "cart"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    }
                },
                "description": "The product is not looked up; unknown ids are dropped when the cart is viewed.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "product id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/cart": {
            "get": {
                "summary": "Cart contents with a running total",
                "tags": [
                    "cart"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                }
            }
        },
        "/create-checkout-session": {
            "post": {
                "summary": "Start payment for the session cart",
                "tags": [
                    "checkout"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    },
                    "303": {
                        "description": "See Other"
                    }
                },
                "description": "Redirects (303) to the hosted payment page, or back to the cart on error."
            }
        },
        "/success": {
            "get": {
                "summary": "Payment success callback",
                "tags": [
                    "checkout"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "Found"
                    }
                },
                "description": "Records an order from the current session cart, clears the cart and redirects to the order history. An empty cart records nothing."
            }
        },
        "/my_orders": {
            "get": {
                "summary": "Order history of the logged-in user, newest first",
                "tags": [
                    "orders"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/main.Page"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "main.HTTPError": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "product not found"
                }
            }
        },
        "main.Page": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "string"
                },
                "flashes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "user": {
                    "$ref": "#/definitions/main.PageUser"
                },
                "data": {}
            }
        },
        "main.PageUser": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
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
	Title:            "Storefront API",
	Description:      "Product catalog, session cart, hosted checkout and order history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
