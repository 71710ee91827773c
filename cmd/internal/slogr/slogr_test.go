// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package slogr_test

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/panoptes-k8s/panoptes/cmd/internal/slogr"
)

var _ = Describe("slogr", func() {
	var buf *bytes.Buffer

	newLogger := func(level slog.Level) logr.Logger {
		return slogr.NewLogr(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})))
	}

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should log info messages with key-value pairs", func() {
		log := newLogger(slog.LevelInfo)
		log.Info("hello", "foo", "bar")

		Expect(buf.String()).To(ContainSubstring(`"msg":"hello"`))
		Expect(buf.String()).To(ContainSubstring(`"foo":"bar"`))
	})

	It("should log error messages with the error value", func() {
		log := newLogger(slog.LevelInfo)
		log.Error(errors.New("boom"), "run failed", "foo", "bar")

		Expect(buf.String()).To(ContainSubstring(`"msg":"run failed"`))
		Expect(buf.String()).To(ContainSubstring(`"error":"boom"`))
		Expect(buf.String()).To(ContainSubstring(`"foo":"bar"`))
	})

	It("should suppress verbose records below the handler level", func() {
		log := newLogger(slog.LevelInfo)
		log.V(1).Info("noisy")

		Expect(buf.String()).To(BeEmpty())
	})

	It("should log verbose records when debug is enabled", func() {
		log := newLogger(slog.LevelDebug)
		log.V(1).Info("noisy")

		Expect(buf.String()).To(ContainSubstring(`"msg":"noisy"`))
	})

	It("should add WithValues pairs to every record", func() {
		log := newLogger(slog.LevelInfo).WithValues("component", "watch")
		log.Info("hello")

		Expect(buf.String()).To(ContainSubstring(`"component":"watch"`))
	})

	It("should group attributes under the logger name", func() {
		log := newLogger(slog.LevelInfo).WithName("controller")
		log.Info("hello", "foo", "bar")

		Expect(buf.String()).To(ContainSubstring(`"controller":{"foo":"bar"}`))
	})
})
