// Package docs Restaurant Resolver API.
//
// Сервис геопространственных запросов по ресторанам.
// Отдаёт точки в видимой области карты с ранжированием по расстоянию
// или приоритету наград и разрешает ресторан по координатам и текстовой
// подсказке, объединяя кандидатов из нескольких источников.
//
// Основные возможности:
// - Отсечение и ранжирование ресторанов по viewport камеры (Web Mercator)
// - Разрешение ресторана по точке: датасет, гео-индекс, внешний Places API
// - Нечёткое сопоставление названий с текстовой подсказкой
// - Отметки посещённых ресторанов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
