// Package i18n resuelve los mensajes de error de la API en inglés o árabe
// según el header Accept-Language, usando el matcher de golang.org/x/text.
// La UI original del producto es bilingüe (ar/en) y espera mensajes ya
// localizados desde el backend.
package i18n

import (
	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English, // por defecto
	language.Arabic,
})

// mensajes por código de error y por idioma.
var messages = map[string]map[string]string{
	"en": {
		"VALIDATION":           "invalid input",
		"UNAUTHORIZED":         "authentication required",
		"FORBIDDEN":            "permission denied",
		"FEATURE_DISABLED":     "feature not available in your plan",
		"SUBSCRIPTION_EXPIRED": "subscription expired",
		"NOT_FOUND":            "resource not found",
		"DUPLICATE":            "resource already exists",
		"CONFLICT":             "operation conflicts with current state",
		"INSUFFICIENT_STOCK":   "insufficient stock",
		"INTERNAL":             "internal server error",
	},
	"ar": {
		"VALIDATION":           "إدخال غير صالح",
		"UNAUTHORIZED":         "يتطلب تسجيل الدخول",
		"FORBIDDEN":            "صلاحية غير كافية",
		"FEATURE_DISABLED":     "الميزة غير متوفرة في باقتك",
		"SUBSCRIPTION_EXPIRED": "انتهى الاشتراك",
		"NOT_FOUND":            "العنصر غير موجود",
		"DUPLICATE":            "العنصر موجود مسبقًا",
		"CONFLICT":             "العملية تتعارض مع الحالة الحالية",
		"INSUFFICIENT_STOCK":   "المخزون غير كافٍ",
		"INTERNAL":             "خطأ داخلي في الخادم",
	},
}

// Match devuelve "en" o "ar" según el valor de Accept-Language.
func Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, index, _ := matcher.Match(tags...)
	if index == 1 {
		return "ar"
	}
	return "en"
}

// Message devuelve el mensaje localizado para el código de error.
// Códigos desconocidos caen al mensaje INTERNAL del idioma.
func Message(acceptLanguage, code string) string {
	lang := Match(acceptLanguage)
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	return messages[lang]["INTERNAL"]
}
