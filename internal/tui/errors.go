// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"movievault/internal/adapter"
)

func humanizeCatalogError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrInvalidAPIKey):
		return "Каталог отклонил ключ API, проверьте настройки"
	case errors.Is(err, adapter.ErrRateLimited):
		return "Слишком много запросов к каталогу, подождите немного"
	case errors.Is(err, adapter.ErrCatalogUnavailable):
		return "Каталог недоступен, проверьте сеть"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или каталог недоступен"
	}

	return err.Error()
}
