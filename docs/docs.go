// Package docs registers the OpenAPI description of the JSON API with swag,
// which gin-swagger serves under /swagger.
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
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Predict fire risk",
                "parameters": [
                    {"description": "Weather and vegetation readings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PredictResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/alert": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Dispatch an alert",
                "parameters": [
                    {"description": "Alert; recipients default to the backend's list", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AlertRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AlertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/realtime/profiles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["realtime"],
                "summary": "List monitoring profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Profile"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["realtime"],
                "summary": "Create a monitoring profile",
                "parameters": [
                    {"description": "Profile; blank user rows are dropped", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateProfileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/realtime/firms": {
            "post": {
                "description": "Alerts are dispatched by the backend when hotspots cross its threshold.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["realtime"],
                "summary": "Fetch hotspots for a profile",
                "parameters": [
                    {"description": "Profile to monitor", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FirmsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FirmsResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not signed in"}}
        },
        "handlers.FirmsRequest": {
            "type": "object",
            "required": ["profile_id"],
            "properties": {"profile_id": {"type": "string", "example": "p-1"}}
        },
        "handlers.FirmsResult": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "hotspots": {"type": "array", "items": {"$ref": "#/definitions/models.Hotspot"}},
                "alerts_sent": {"type": "boolean"},
                "triggered_hotspots": {"type": "array", "items": {"$ref": "#/definitions/models.Hotspot"}},
                "markers": {"type": "array", "items": {"$ref": "#/definitions/views.Marker"}}
            }
        },
        "handlers.PredictResult": {
            "type": "object",
            "properties": {
                "probability": {"type": "number"},
                "risk": {"type": "string", "enum": ["HIGH", "LOW"]},
                "feature_importance": {"type": "array", "items": {"$ref": "#/definitions/models.FeatureImportance"}},
                "explanation": {"type": "string"},
                "theme": {"$ref": "#/definitions/views.RiskTheme"}
            }
        },
        "models.AlertDelivery": {
            "type": "object",
            "properties": {
                "to": {"type": "string"},
                "channel": {"type": "string", "enum": ["email", "sms"]},
                "status": {"type": "string", "enum": ["SENT", "QUEUED"]}
            }
        },
        "models.AlertRequest": {
            "type": "object",
            "properties": {
                "to_emails": {"type": "array", "items": {"type": "string"}},
                "to_phones": {"type": "array", "items": {"type": "string"}},
                "subject": {"type": "string"},
                "message": {"type": "string"},
                "source": {"type": "string", "enum": ["predict", "realtime"]}
            }
        },
        "models.AlertResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "delivered_count": {"type": "integer"},
                "delivered": {"type": "array", "items": {"$ref": "#/definitions/models.AlertDelivery"}}
            }
        },
        "models.CreateProfileRequest": {
            "type": "object",
            "properties": {
                "project_name": {"type": "string", "example": "CA Watch"},
                "api_key": {"type": "string"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/models.RealtimeUser"}}
            }
        },
        "models.FeatureImportance": {
            "type": "object",
            "properties": {
                "feature": {"type": "string"},
                "importance": {"type": "number"}
            }
        },
        "models.Hotspot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "brightness": {"type": "number"},
                "acq_date": {"type": "string"},
                "satellite": {"type": "string", "enum": ["A", "T"]}
            }
        },
        "models.PredictRequest": {
            "type": "object",
            "properties": {
                "temperature": {"type": "number", "example": 32},
                "humidity": {"type": "number", "example": 20},
                "wind_speed": {"type": "number", "example": 12},
                "vegetation_index": {"type": "number", "example": 0.7}
            }
        },
        "models.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "project_name": {"type": "string"},
                "api_key": {"type": "string"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/models.RealtimeUser"}}
            }
        },
        "models.RealtimeUser": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "views.Marker": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "brightness": {"type": "number"},
                "acq_date": {"type": "string"},
                "satellite": {"type": "string"},
                "variant": {"type": "string", "enum": ["hot", "default"]}
            }
        },
        "views.RiskTheme": {
            "type": "object",
            "properties": {
                "high": {"type": "boolean"},
                "image": {"type": "string"},
                "alt": {"type": "string"},
                "headline": {"type": "string"}
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
	Title:            "IgnisShield Web API",
	Description:      "Session-authenticated JSON endpoints behind the IgnisShield pages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
