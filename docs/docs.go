// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate it with swag init (see cmd/server/docs.go) after changing a
// handler annotation.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/cropwise/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/districts/{state}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reference"
                ],
                "summary": "List districts of a state",
                "parameters": [
                    {
                        "type": "string",
                        "description": "State name",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Districts, empty for an unknown state",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.DistrictsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports data-source availability. Status is degraded when the weather or model breaker is open.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "Health status",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/advisor.Health"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/native": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Native crops of a district (query form)",
                "parameters": [
                    {
                        "type": "string",
                        "example": "Punjab",
                        "description": "State name",
                        "name": "state",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "example": "Ludhiana",
                        "description": "District name",
                        "name": "district",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "kharif, rabi_early, rabi_late, zaid or perennial",
                        "name": "season",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Native crops",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/advisor.NativeResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown district",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Returns the crops grown historically in the district that suit the season. Results are memoized in the native cache.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Native crops of a district",
                "parameters": [
                    {
                        "description": "District and optional season",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/advisor.NativeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Native crops",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/advisor.NativeResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown district",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/native/cache": {
            "delete": {
                "security": [
                    {
                        "BasicAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Drops every memoized native crop list. Requires admin credentials.",
                "tags": [
                    "Admin"
                ],
                "summary": "Purge the native cache",
                "responses": {
                    "204": {
                        "description": "Cache purged"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "403": {
                        "description": "Admin endpoints disabled",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/native/cache/{state}/{district}": {
            "delete": {
                "security": [
                    {
                        "BasicAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Drops the memoized native list of a district. Without season the all-season entry is dropped. Requires admin credentials.",
                "tags": [
                    "Admin"
                ],
                "summary": "Invalidate one native cache entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "State name",
                        "name": "state",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "District name",
                        "name": "district",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "kharif, rabi_early, rabi_late, zaid or perennial",
                        "name": "season",
                        "in": "query"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Entry invalidated"
                    },
                    "400": {
                        "description": "Invalid season",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "403": {
                        "description": "Admin endpoints disabled",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Ranks crops for the district and season from live weather, agronomic rules and historical yield. Season defaults to the current one.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Recommend crops for a district",
                "parameters": [
                    {
                        "description": "District, optional season and top_k (default 3)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/advisor.Request"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Ranked recommendations",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/advisor.Result"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown district",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/seasons": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reference"
                ],
                "summary": "List seasons",
                "responses": {
                    "200": {
                        "description": "Season table and current season",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.SeasonsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/states": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reference"
                ],
                "summary": "List states",
                "responses": {
                    "200": {
                        "description": "Known states",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.StatesResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "advisor.Health": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "current_season": {
                    "$ref": "#/definitions/models.Season"
                },
                "model_loaded": {
                    "type": "boolean"
                },
                "model_available": {
                    "type": "boolean"
                },
                "model_breaker": {
                    "type": "string"
                },
                "features": {
                    "type": "integer"
                },
                "districts_loaded": {
                    "type": "integer"
                },
                "yield_states": {
                    "type": "integer"
                },
                "weather_available": {
                    "type": "boolean"
                },
                "weather_breaker": {
                    "type": "string"
                },
                "native_store": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "advisor.NativeRequest": {
            "type": "object",
            "required": [
                "district",
                "state"
            ],
            "properties": {
                "state": {
                    "type": "string",
                    "maxLength": 100
                },
                "district": {
                    "type": "string",
                    "maxLength": 100
                },
                "season": {
                    "type": "string"
                }
            }
        },
        "advisor.NativeResult": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "district": {
                    "type": "string"
                },
                "season": {
                    "$ref": "#/definitions/models.Season"
                },
                "native_crops": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "advisor.Request": {
            "type": "object",
            "required": [
                "district",
                "state"
            ],
            "properties": {
                "state": {
                    "type": "string",
                    "maxLength": 100
                },
                "district": {
                    "type": "string",
                    "maxLength": 100
                },
                "season": {
                    "type": "string"
                },
                "top_k": {
                    "type": "integer"
                },
                "district_native": {
                    "type": "boolean"
                }
            }
        },
        "advisor.Result": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "district": {
                    "type": "string"
                },
                "season": {
                    "$ref": "#/definitions/models.Season"
                },
                "predictions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Recommendation"
                    }
                },
                "weather_data": {
                    "$ref": "#/definitions/models.WeatherSnapshot"
                },
                "location": {
                    "$ref": "#/definitions/district.Location"
                },
                "model_used": {
                    "type": "boolean"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "api.DistrictsResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "districts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "api.SeasonsResponse": {
            "type": "object",
            "properties": {
                "current_season": {
                    "$ref": "#/definitions/models.Season"
                },
                "seasons": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.SeasonInfo"
                    }
                }
            }
        },
        "api.StatesResponse": {
            "type": "object",
            "properties": {
                "states": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "district.Location": {
            "type": "object",
            "properties": {
                "latitude": {
                    "type": "number"
                },
                "longitude": {
                    "type": "number"
                },
                "source": {
                    "$ref": "#/definitions/district.LocationSource"
                }
            }
        },
        "district.LocationSource": {
            "type": "string",
            "enum": [
                "district_record",
                "city_default",
                "national_centroid"
            ],
            "x-enum-varnames": [
                "SourceRecord",
                "SourceCity",
                "SourceCentroid"
            ]
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "data": {},
                "metadata": {
                    "$ref": "#/definitions/models.Metadata"
                },
                "error": {
                    "$ref": "#/definitions/models.APIError"
                }
            }
        },
        "models.Confidence": {
            "type": "string",
            "enum": [
                "high",
                "medium",
                "low"
            ],
            "x-enum-varnames": [
                "ConfidenceHigh",
                "ConfidenceMedium",
                "ConfidenceLow"
            ]
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {
                    "type": "string"
                },
                "query_time_ms": {
                    "type": "integer"
                },
                "cached": {
                    "type": "boolean"
                }
            }
        },
        "models.Recommendation": {
            "type": "object",
            "properties": {
                "crop": {
                    "type": "string"
                },
                "probability": {
                    "type": "number"
                },
                "confidence": {
                    "$ref": "#/definitions/models.Confidence"
                },
                "season": {
                    "$ref": "#/definitions/models.Season"
                },
                "weather": {
                    "$ref": "#/definitions/models.WeatherSnapshot"
                },
                "suitability_reason": {
                    "type": "string"
                },
                "district_historical": {
                    "type": "boolean"
                },
                "yield_efficiency": {
                    "type": "number"
                },
                "district_native": {
                    "type": "boolean"
                }
            }
        },
        "models.Season": {
            "type": "string",
            "enum": [
                "kharif",
                "rabi_early",
                "rabi_late",
                "zaid",
                "perennial"
            ],
            "x-enum-varnames": [
                "SeasonKharif",
                "SeasonRabiEarly",
                "SeasonRabiLate",
                "SeasonZaid",
                "SeasonPerennial"
            ]
        },
        "models.SeasonInfo": {
            "type": "object",
            "properties": {
                "season": {
                    "$ref": "#/definitions/models.Season"
                },
                "months": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "description": {
                    "type": "string"
                },
                "typical_crops": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.WeatherSnapshot": {
            "type": "object",
            "properties": {
                "temperature": {
                    "type": "number"
                },
                "humidity": {
                    "type": "number"
                },
                "rainfall": {
                    "type": "number"
                },
                "wind_speed": {
                    "type": "number"
                },
                "precipitation_current": {
                    "type": "number"
                },
                "precipitation_week": {
                    "type": "number"
                },
                "fetch_time": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "description": "Admin username and password (bcrypt hash configured server side).",
            "type": "basic"
        },
        "BearerAuth": {
            "description": "\"Bearer <token>\" issued by cropctl auth token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "description": "Crop recommendations and district native crops",
            "name": "Recommendations"
        },
        {
            "description": "Seasons, states and districts known to the service",
            "name": "Reference"
        },
        {
            "description": "Health and status",
            "name": "Core"
        },
        {
            "description": "Native cache maintenance, admin credentials required",
            "name": "Admin"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Cropwise API",
	Description:      "Seasonal crop recommendations for Indian districts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
