package handler

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/validator"
)

// parseID читает положительный целочисленный параметр пути
func parseID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID.WithDetails(map[string]interface{}{name: raw})
	}
	return id, nil
}

// parseBody декодирует JSON тело запроса и валидирует его.
// Неизвестные поля отклоняются, так что частичное обновление не может задеть лишнее.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.ErrInvalidRequest.WithMessage("Request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"body": err.Error()})
	}

	return validator.Validate(dst)
}

// queryInt64 - необязательный целочисленный query параметр; пустое значение даёт nil
func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{name: raw})
	}
	return &v, nil
}

// queryFloat - обязательный числовой query параметр; при ошибке возвращает invalid с деталями
func queryFloat(c *fiber.Ctx, name string, invalid *errors.AppError) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, invalid.WithDetails(map[string]interface{}{name: "required"})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, invalid.WithDetails(map[string]interface{}{name: raw})
	}
	return v, nil
}

// queryList собирает повторяющиеся параметры (?tags=a&tags=b) и значения через запятую
func queryList(c *fiber.Ctx, name string) []string {
	var values []string
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) == name {
			values = append(values, string(value))
		}
	})
	return values
}
