// Package docs registers the OpenAPI document of the sensordash API.
// Regenerate with: swag init -g api/api.router.go -o api/docs
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
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthStatus"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get dashboard",
                "parameters": [
                    {"type": "string", "description": "Sensor type or 'all'; defaults to the selected filter", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/sensors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "List current readings",
                "parameters": [
                    {"type": "string", "description": "Sensor type or 'all'", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SensorReading"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/sensors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "Get sensor",
                "parameters": [
                    {"type": "string", "description": "Sensor ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SensorReading"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/sensors/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "Get sensor history",
                "parameters": [
                    {"type": "string", "description": "Sensor ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SensorHistory"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/readings/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "List recent readings",
                "parameters": [
                    {"type": "integer", "description": "Number of readings (1-1000, default 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SensorReading"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/analytics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AnalyticsSummary"}}
                }
            }
        },
        "/groups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get type groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SensorTypeGroup"}}}
                }
            }
        },
        "/filter": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get filter",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FilterSelection"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Set filter",
                "parameters": [
                    {"description": "Filter selection", "name": "filter", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.FilterSelection"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FilterSelection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Refresh now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardView"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "List notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Notification"}}}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "integer"},
                "request_id": {"type": "string"},
                "details": {}
            }
        },
        "models.SensorReading": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "value": {"type": "number"},
                "unit": {"type": "string"},
                "icon": {"type": "string"},
                "timestamp": {"type": "string"},
                "isAnomaly": {"type": "boolean"},
                "trend": {"type": "string", "enum": ["up", "down", "stable"]},
                "anomalyType": {"type": "string", "enum": ["NORMAL", "EXTREME", "CRITICAL", "TREND", "HIGH_VELOCITY", "WARNING", "OUT_OF_RANGE"]},
                "confidence": {"type": "number"}
            }
        },
        "models.SensorAggregate": {
            "type": "object",
            "properties": {
                "sensorId": {"type": "string"},
                "sensorType": {"type": "string"},
                "unit": {"type": "string"},
                "icon": {"type": "string"},
                "min": {"type": "number"},
                "max": {"type": "number"},
                "avg": {"type": "number"},
                "anomalyCount": {"type": "integer"},
                "rangeCoverage": {"type": "number"}
            }
        },
        "models.SensorTypeGroup": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "icon": {"type": "string"},
                "count": {"type": "integer"},
                "anomalies": {"type": "integer"}
            }
        },
        "models.DashboardView": {
            "type": "object",
            "properties": {
                "filter": {"type": "string"},
                "sensors": {"type": "array", "items": {"$ref": "#/definitions/models.SensorReading"}},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/models.SensorTypeGroup"}},
                "analytics": {"type": "array", "items": {"$ref": "#/definitions/models.SensorAggregate"}},
                "totalAnomalies": {"type": "integer"},
                "hasAnyAnomaly": {"type": "boolean"},
                "lastUpdated": {"type": "string"},
                "connected": {"type": "boolean"}
            }
        },
        "models.AnalyticsSummary": {
            "type": "object",
            "properties": {
                "analytics": {"type": "array", "items": {"$ref": "#/definitions/models.SensorAggregate"}},
                "totalAnomalies": {"type": "integer"}
            }
        },
        "models.ChartPoint": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "label": {"type": "string"},
                "value": {"type": "number"},
                "isAnomaly": {"type": "boolean"}
            }
        },
        "models.SensorHistory": {
            "type": "object",
            "properties": {
                "sensorId": {"type": "string"},
                "sensorType": {"type": "string"},
                "unit": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/models.ChartPoint"}}
            }
        },
        "models.FilterSelection": {
            "type": "object",
            "properties": {
                "filter": {"type": "string"}
            }
        },
        "models.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "severity": {"type": "string", "enum": ["default", "destructive"]},
                "sensorTypes": {"type": "array", "items": {"type": "string"}},
                "anomalyType": {"type": "string", "enum": ["NORMAL", "EXTREME", "CRITICAL", "TREND", "HIGH_VELOCITY", "WARNING", "OUT_OF_RANGE"]},
                "confidence": {"type": "number"},
                "createdAt": {"type": "string"}
            }
        },
        "models.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "connected": {"type": "boolean"},
                "lastUpdated": {"type": "string"},
                "tick": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "sensordash API",
	Description:      "Simulated sensor dashboard: readings, history, analytics and anomaly alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
