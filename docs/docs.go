// Package docs registra la especificación OpenAPI que sirve /swagger/*.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Mis mascotas", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}},
            "post": {"tags": ["pets"], "summary": "Registrar mascota", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "validation failed"}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Perfil de mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "404": {"description": "pet not found"}}},
            "patch": {"tags": ["pets"], "summary": "Actualizar perfil de mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/pets/{petID}/appointments": {
            "get": {"tags": ["appointments"], "summary": "Listar citas de una mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}, {"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["appointments"], "summary": "Agendar cita", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/appointments/{appointmentID}": {
            "get": {"tags": ["appointments"], "summary": "Obtener cita", "parameters": [{"type": "string", "name": "appointmentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["appointments"], "summary": "Actualizar cita", "parameters": [{"type": "string", "name": "appointmentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["appointments"], "summary": "Borrar cita", "parameters": [{"type": "string", "name": "appointmentID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/appointments/{appointmentID}/occurrences": {
            "get": {"tags": ["appointments"], "summary": "Próximas ocurrencias de una cita recurrente", "parameters": [{"type": "string", "name": "appointmentID", "in": "path", "required": true}, {"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/appointments/recurrence-end": {
            "get": {"tags": ["appointments"], "summary": "Sugerir fin de recurrencia", "parameters": [{"type": "string", "name": "start", "in": "query", "required": true}, {"type": "string", "name": "pattern", "in": "query", "required": true}, {"type": "string", "name": "current_end", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/pets/{petID}/medications": {
            "get": {"tags": ["medications"], "summary": "Listar medicaciones de una mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["medications"], "summary": "Registrar medicación", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/medications/{medicationID}": {
            "get": {"tags": ["medications"], "summary": "Obtener medicación", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["medications"], "summary": "Actualizar medicación", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["medications"], "summary": "Borrar medicación", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/medications/{medicationID}/logs": {
            "get": {"tags": ["medications"], "summary": "Historial de tomas", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["medications"], "summary": "Registrar toma", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/medications/{medicationID}/logs/{logID}": {
            "patch": {"tags": ["medications"], "summary": "Corregir toma", "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}, {"type": "string", "name": "logID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/me/refills": {
            "get": {"tags": ["medications"], "summary": "Reposiciones próximas", "responses": {"200": {"description": "OK"}}}
        },
        "/pets/{petID}/medical-records": {
            "get": {"tags": ["medical-records"], "summary": "Listar historia clínica de una mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["medical-records"], "summary": "Registrar historia clínica", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/medical-records/{recordID}": {
            "get": {"tags": ["medical-records"], "summary": "Obtener registro", "parameters": [{"type": "string", "name": "recordID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["medical-records"], "summary": "Borrar registro de historia clínica", "parameters": [{"type": "string", "name": "recordID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/calendar": {
            "get": {"tags": ["calendar"], "summary": "Calendario mensual", "parameters": [{"type": "string", "name": "month", "in": "query"}, {"type": "string", "name": "pet_id", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/calendar/{date}": {
            "get": {"tags": ["calendar"], "summary": "Eventos de un día", "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}, {"type": "string", "name": "pet_id", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "no events on this day"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "Feed de notificaciones", "parameters": [{"type": "integer", "name": "lookahead_days", "in": "query"}, {"type": "string", "name": "pet_id", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Record Guardian API",
	Description:      "Citas, medicaciones e historia clínica de mascotas, con estados derivados en cada lectura.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
