package dto

import (
	"reflect"
	"strings"
)

// ActionResult respuesta uniforme de las acciones: {success, data?, error?}.
type ActionResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK resultado correcto con datos.
func OK(data interface{}) ActionResult {
	return ActionResult{Success: true, Data: data}
}

// Fail resultado fallido con mensaje para el usuario.
func Fail(msg string) ActionResult {
	return ActionResult{Success: false, Error: msg}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// PageResponse página de resultados.
type PageResponse struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int64       `json:"total"`
}

// ErrorResponse cuerpo de error HTTP de los endpoints que devuelven códigos reales.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PatchFields convierte un DTO de actualización parcial en columnas: cada campo puntero
// no nulo se incluye con la clave de su etiqueta json. Los campos no puntero se ignoran.
func PatchFields(patch interface{}) map[string]any {
	out := map[string]any{}
	v := reflect.ValueOf(patch)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if !f.IsExported() || fv.Kind() != reflect.Pointer || fv.IsNil() {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = fv.Elem().Interface()
	}
	return out
}
