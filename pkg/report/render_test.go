// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package report_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/panoptes-k8s/panoptes/pkg/report"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

var _ = Describe("renderer", func() {
	Describe("#Render", func() {
		var renderer *report.HTMLRenderer

		BeforeEach(func() {
			var err error
			renderer, err = report.NewHTMLRenderer()
			Expect(err).ToNot(HaveOccurred())
		})

		It("should render an html report", func() {
			rep := &report.Report{
				ID:              "c8681587-b840-4c40-a808-cbd76ff52fcd",
				Time:            time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local),
				PanoptesVersion: "1",
				Metadata:        map[string]any{"foo": "bar"},
				Providers: []report.Provider{
					{
						ID:       "k8s",
						Name:     "Kubernetes",
						Metadata: map[string]string{"env": "prod"},
						Rulesets: []report.Ruleset{
							{
								ID:      "owasp-kubernetes-top-ten",
								Name:    "OWASP Kubernetes Top Ten",
								Version: "v2022",
								Rules: []report.Rule{
									{
										ID:       "K01",
										Name:     "Insecure Workload Configurations",
										Severity: rule.SeverityHigh,
										Checks: []report.Check{
											{
												Status:  rule.Failed,
												Message: "Container is running in privileged mode.",
												Targets: []rule.Target{
													rule.NewTarget("kind", "pod", "name", "foo", "namespace", "foo", "container", "bar"),
												},
											},
										},
									},
								},
							},
						},
					},
				},
			}

			buf := &bytes.Buffer{}
			Expect(renderer.Render(buf, rep)).To(Succeed())

			out := buf.String()
			Expect(out).To(ContainSubstring("c8681587-b840-4c40-a808-cbd76ff52fcd"))
			Expect(out).To(ContainSubstring("Generated on 01-01-2000 by Panoptes 1"))
			Expect(out).To(ContainSubstring("foo: bar"))
			Expect(out).To(ContainSubstring("Kubernetes"))
			Expect(out).To(ContainSubstring("env: prod"))
			Expect(out).To(ContainSubstring("OWASP Kubernetes Top Ten (v2022)"))
			Expect(out).To(ContainSubstring("🔴 Failed"))
			Expect(out).To(ContainSubstring("K01 - Insecure Workload Configurations"))
			Expect(out).To(ContainSubstring("Container is running in privileged mode."))
			Expect(out).To(ContainSubstring("container=bar, kind=pod, name=foo, namespace=foo"))
		})

		It("should error for unsupported report types", func() {
			Expect(renderer.Render(&bytes.Buffer{}, "foo")).To(MatchError("unsupported report type: string"))
		})
	})
})
