package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// queryUUID lee un UUID opcional; vacío o "all" equivalen a no filtrar.
func queryUUID(q url.Values, key string) (*uuid.UUID, error) {
	v := q.Get(key)
	if v == "" || v == "all" {
		return nil, nil
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("el parámetro %s no es un ID válido", key)
	}
	return &id, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("el parámetro %s debe ser true o false", key)
	}
	return &b, nil
}

func queryDate(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	t, err := parseDate(v)
	if err != nil {
		return nil, fmt.Errorf("el parámetro %s debe ser una fecha con formato AAAA-MM-DD", key)
	}
	return &t, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
