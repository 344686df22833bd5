// Package docs serves the swagger document of exchanged.
// Regenerate with: swag init -g app/exchanged/main.go -o app/exchanged/docs
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
		"/auth/signingMsg/{timestamp}": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Get signing message",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "timestamp",
						"required": true,
						"type": "integer"
					}
				]
			}
		},
		"/auth/token": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Get access token",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.LoginProof"
						}
					}
				]
			}
		},
		"/exchange/collections": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "List collections",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			},
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Add to collections",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.allowlistReq"
						}
					}
				]
			}
		},
		"/exchange/collections/{address}": {
			"delete": {
				"tags": [
					"exchange"
				],
				"summary": "Remove from collections",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "address",
						"required": true,
						"type": "string"
					}
				]
			}
		},
		"/exchange/currencies": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "List currencies",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			},
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Add to currencies",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.allowlistReq"
						}
					}
				]
			}
		},
		"/exchange/currencies/{address}": {
			"delete": {
				"tags": [
					"exchange"
				],
				"summary": "Remove from currencies",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "address",
						"required": true,
						"type": "string"
					}
				]
			}
		},
		"/exchange/events": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "Committed events",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "type",
						"type": "string"
					},
					{
						"in": "query",
						"name": "user",
						"type": "string"
					},
					{
						"in": "query",
						"name": "collection",
						"type": "string"
					},
					{
						"in": "query",
						"name": "orderHash",
						"type": "string"
					},
					{
						"in": "query",
						"name": "offset",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				]
			}
		},
		"/exchange/fee": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "Fee policy",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/exchange/fee/rate": {
			"put": {
				"tags": [
					"exchange"
				],
				"summary": "Set fee rate",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.feeRateReq"
						}
					}
				]
			}
		},
		"/exchange/fee/recipient": {
			"put": {
				"tags": [
					"exchange"
				],
				"summary": "Set fee recipient",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.feeRecipientReq"
						}
					}
				]
			}
		},
		"/exchange/listings/execute": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Execute listing",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.executeListingReq"
						}
					}
				]
			}
		},
		"/exchange/listings/execute-native": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Execute listing with native currency",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.executeNativeReq"
						}
					}
				]
			}
		},
		"/exchange/listings/hash": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Listing hash",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.listingReq"
						}
					}
				]
			}
		},
		"/exchange/listings/validate": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Validate listing",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.executeListingReq"
						}
					}
				]
			}
		},
		"/exchange/nonces/cancel": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Cancel orders",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.cancelReq"
						}
					}
				]
			}
		},
		"/exchange/nonces/cancel-below": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Cancel all orders below nonce",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.cancelBelowReq"
						}
					}
				]
			}
		},
		"/exchange/nonces/{account}": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "Nonce state",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "account",
						"required": true,
						"type": "string"
					}
				]
			}
		},
		"/exchange/nonces/{account}/{nonce}": {
			"get": {
				"tags": [
					"exchange"
				],
				"summary": "Nonce validity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "account",
						"required": true,
						"type": "string"
					},
					{
						"in": "path",
						"name": "nonce",
						"required": true,
						"type": "string"
					}
				]
			}
		},
		"/exchange/offers/accept": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Accept offer",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.acceptOfferReq"
						}
					}
				]
			}
		},
		"/exchange/offers/hash": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Offer hash",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.offerReq"
						}
					}
				]
			}
		},
		"/exchange/offers/validate": {
			"post": {
				"tags": [
					"exchange"
				],
				"summary": "Validate offer",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"401": {
						"description": "Unauthorized"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "params",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.acceptOfferReq"
						}
					}
				]
			}
		},
		"/healthcheck": {
			"get": {
				"tags": [
					"healthcheck"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		}
	},
	"definitions": {
		"domain.LoginProof": {
			"type": "object",
			"required": [
				"address",
				"timestamp",
				"signature"
			],
			"properties": {
				"address": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"signature": {
					"type": "string"
				}
			}
		},
		"http.acceptOfferReq": {
			"type": "object",
			"properties": {
				"offer": {
					"$ref": "#/definitions/http.offerReq"
				}
			}
		},
		"http.allowlistReq": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				}
			},
			"required": [
				"address"
			]
		},
		"http.cancelBelowReq": {
			"type": "object",
			"properties": {
				"minNonce": {
					"type": "string"
				}
			},
			"required": [
				"minNonce"
			]
		},
		"http.cancelReq": {
			"type": "object",
			"required": [
				"nonces"
			],
			"properties": {
				"nonces": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"http.executeListingReq": {
			"type": "object",
			"properties": {
				"listing": {
					"$ref": "#/definitions/http.listingReq"
				},
				"payment": {
					"$ref": "#/definitions/http.paymentReq"
				},
				"value": {
					"type": "string"
				}
			}
		},
		"http.executeNativeReq": {
			"type": "object",
			"required": [
				"value"
			],
			"properties": {
				"listing": {
					"$ref": "#/definitions/http.listingReq"
				},
				"value": {
					"type": "string"
				}
			}
		},
		"http.feeRateReq": {
			"type": "object",
			"required": [
				"rate"
			],
			"properties": {
				"rate": {
					"type": "integer"
				}
			}
		},
		"http.feeRecipientReq": {
			"type": "object",
			"properties": {
				"recipient": {
					"type": "string"
				}
			},
			"required": [
				"recipient"
			]
		},
		"http.listingReq": {
			"type": "object",
			"properties": {
				"collection": {
					"type": "string"
				},
				"tokenId": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				},
				"expiry": {
					"type": "string"
				},
				"nonce": {
					"type": "string"
				},
				"seller": {
					"type": "string"
				},
				"signature": {
					"type": "string"
				}
			},
			"required": [
				"collection",
				"tokenId",
				"currency",
				"amount",
				"expiry",
				"nonce",
				"seller",
				"signature"
			]
		},
		"http.offerReq": {
			"type": "object",
			"properties": {
				"collection": {
					"type": "string"
				},
				"tokenId": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				},
				"expiry": {
					"type": "string"
				},
				"nonce": {
					"type": "string"
				},
				"buyer": {
					"type": "string"
				},
				"signature": {
					"type": "string"
				}
			},
			"required": [
				"collection",
				"tokenId",
				"currency",
				"amount",
				"expiry",
				"nonce",
				"buyer",
				"signature"
			]
		},
		"http.paymentReq": {
			"type": "object",
			"properties": {
				"kind": {
					"type": "string"
				},
				"token": {
					"type": "string"
				}
			},
			"required": [
				"kind"
			]
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"description": "retrieve a token from POST /auth/token and send it as ` + "`" + `Bearer {token}` + "`" + `",
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
	Title:            "X Exchange API",
	Description:      "Settlement engine for signed NFT listings and offers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
