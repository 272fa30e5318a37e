// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
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
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/analysis": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Analyze a property investment scenario",
                "description": "Computes mortgage terms, yearly projections and summary metrics for one scenario",
                "parameters": [
                    {
                        "description": "Investment scenario",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.PropertyInvestmentInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.AnalysisResult"}
                    },
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analysis/compare": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Compare investment scenarios",
                "description": "Analyzes multiple scenarios and identifies the best ROI and cash flow",
                "parameters": [
                    {
                        "description": "Object with a scenarios array",
                        "name": "scenarios",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analysis/export": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "tags": ["Analysis"],
                "summary": "Export an analysis",
                "description": "Analyzes one scenario and returns it rendered as csv, xlsx, pdf or table",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Export format (csv, xlsx, pdf, table)",
                        "name": "format",
                        "in": "query",
                        "required": true
                    },
                    {
                        "description": "Investment scenario",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.PropertyInvestmentInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        }
    },
    "definitions": {
        "models.PropertyInvestmentInput": {
            "type": "object",
            "properties": {
                "propertyPrice": {"type": "number"},
                "downPayment": {"type": "number"},
                "interestRate": {"type": "number"},
                "loanTermYears": {"type": "integer"},
                "monthlyRent": {"type": "number"},
                "holdingPeriodYears": {"type": "integer"},
                "propertyTaxAnnual": {"type": "number"},
                "hoaMonthly": {"type": "number"},
                "maintenancePercent": {"type": "number"},
                "managementFeePercent": {"type": "number"},
                "vacancyRate": {"type": "number"},
                "rentIncreaseAnnual": {"type": "number"}
            }
        },
        "models.AnalysisResult": {
            "type": "object",
            "properties": {
                "input": {"$ref": "#/definitions/models.PropertyInvestmentInput"},
                "mortgage": {"type": "object"},
                "yearlyProjections": {"type": "array", "items": {"type": "object"}},
                "summary": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Rentiva API",
	Description:      "Projection engine for leveraged French rental-property purchases",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
