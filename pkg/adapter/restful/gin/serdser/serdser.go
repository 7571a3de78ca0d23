// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by resource packages. Failures are reported
// as {"detail": "...", "errors": {"field": "message"}} objects where
// the errors member is present only for field-level validation errors.
package serdser

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/goride/goride/pkg/core/cerr"
)

const invalidFieldsDetail = "Some fields are invalid."

var jsonNamesOnce sync.Once

// UseJSONNames makes the gin validator report fields by their json
// names, so binding errors and use case errors share the same keys.
func UseJSONNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var errs map[string]string
		for _, ferr := range err {
			AddErr(&errs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": invalidFieldsDetail,
			"errors": errs,
		})
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr records msg for the name field. The first message of each
// field is kept, since one message per field is presented to users.
func AddErr(errs *map[string]string, name, msg string) {
	if (*errs) == nil {
		*errs = make(map[string]string)
	}
	if _, ok := (*errs)[name]; !ok {
		(*errs)[name] = msg
	}
}

func Assert(errs *map[string]string, ok bool, name, msg string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msg)
	return false
}

// BadRequest reports the errs field errors, if there is any. It
// returns true if errs was empty and nothing was written.
func BadRequest(c *gin.Context, errs map[string]string) bool {
	if len(errs) == 0 {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"detail": invalidFieldsDetail,
		"errors": errs,
	})
	return false
}

func SerErr(c *gin.Context, err error) {
	_ = c.Error(err)
	var ce *cerr.Error
	if !errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
		return
	}
	h := gin.H{"detail": ce.Err.Error()}
	var fe cerr.FieldErrors
	if errors.As(err, &fe) {
		h["detail"] = invalidFieldsDetail
		h["errors"] = fe
	}
	c.JSON(ce.HTTPStatusCode, h)
}
