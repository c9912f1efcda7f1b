package chi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// DateLayout is the accepted publish_date format. Dates are read as UTC.
const DateLayout = "2006-01-02 15:04:05"

// requestValues merges the query string and a form-encoded body.
// Empty values are dropped so that "author=" reads as an absent parameter.
func requestValues(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	vals := make(url.Values, len(r.Form))
	for k, vs := range r.Form {
		for _, v := range vs {
			if v != "" {
				vals[k] = append(vals[k], v)
			}
		}
	}
	return vals, nil
}

func bindPathID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", fmt.Errorf("invalid path parameter id: %w", err)
	}
	return id, nil
}

// addParams are the parameters of POST /book/novel/add. All are required.
type addParams struct {
	Title       string
	Author      string
	WordCount   int
	PublishDate time.Time
}

func bindAddParams(v url.Values) (addParams, error) {
	var (
		p    addParams
		date string
	)
	if err := runtime.BindQueryParameter("form", true, true, "title", v, &p.Title); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, true, "author", v, &p.Author); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, true, "word_count", v, &p.WordCount); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, true, "publish_date", v, &date); err != nil {
		return p, err
	}
	t, err := parseDate(date)
	if err != nil {
		return p, err
	}
	p.PublishDate = t
	return p, nil
}

// updateParams are the parameters of PUT /book/novel/update. Only ID is required.
type updateParams struct {
	ID          string
	Title       *string
	Author      *string
	WordCount   *int
	PublishDate *time.Time
}

func bindUpdateParams(v url.Values) (updateParams, error) {
	var (
		p    updateParams
		date *string
	)
	if err := runtime.BindQueryParameter("form", true, true, "id", v, &p.ID); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "title", v, &p.Title); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "author", v, &p.Author); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "word_count", v, &p.WordCount); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "publish_date", v, &date); err != nil {
		return p, err
	}
	if date != nil {
		t, err := parseDate(*date)
		if err != nil {
			return p, err
		}
		p.PublishDate = &t
	}
	return p, nil
}

// bindQueryParams reads POST /book/novel/query parameters.
// gt_word_count defaults to 0; every other predicate is optional.
func bindQueryParams(v url.Values) (searchuc.Params, error) {
	var p searchuc.Params
	if err := runtime.BindQueryParameter("form", true, false, "author", v, &p.Author); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "title", v, &p.Title); err != nil {
		return p, err
	}
	var gt *int
	if err := runtime.BindQueryParameter("form", true, false, "gt_word_count", v, &gt); err != nil {
		return p, err
	}
	if gt != nil {
		p.MinWordCount = *gt
	}
	if err := runtime.BindQueryParameter("form", true, false, "lt_word_count", v, &p.MaxWordCount); err != nil {
		return p, err
	}
	return p, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("publish_date must match %q", DateLayout)
	}
	return t, nil
}
