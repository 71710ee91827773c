// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package utils_test

import (
	"context"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"
	fakeclient "sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
)

var _ = Describe("utils", func() {
	var (
		fakeClient       client.Client
		ctx              = context.TODO()
		namespaceFoo     = "foo"
		namespaceDefault = "default"
	)

	Describe("#GetPods", func() {
		BeforeEach(func() {
			fakeClient = fakeclient.NewClientBuilder().Build()
			for i := 0; i < 10; i++ {
				pod := &corev1.Pod{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceDefault,
					},
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{
							{
								Name: "test",
							},
						},
					},
				}
				Expect(fakeClient.Create(ctx, pod)).To(Succeed())
			}
			for i := 10; i < 12; i++ {
				pod := &corev1.Pod{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceDefault,
						Labels: map[string]string{
							"foo": "bar",
						},
					},
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{
							{
								Name: "test",
							},
						},
					},
				}
				Expect(fakeClient.Create(ctx, pod)).To(Succeed())
			}
			for i := 0; i < 6; i++ {
				pod := &corev1.Pod{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceFoo,
					},
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{
							{
								Name: "test",
							},
						},
					},
				}
				Expect(fakeClient.Create(ctx, pod)).To(Succeed())
			}
		})

		It("should return correct number of pods in default namespace", func() {
			pods, err := utils.GetPods(ctx, fakeClient, namespaceDefault, labels.NewSelector(), 2)

			Expect(len(pods)).To(Equal(12))
			Expect(err).To(BeNil())
		})

		It("should return correct number of pods in foo namespace", func() {
			pods, err := utils.GetPods(ctx, fakeClient, namespaceFoo, labels.NewSelector(), 2)

			Expect(len(pods)).To(Equal(6))
			Expect(err).To(BeNil())
		})

		It("should return correct number of pods in all namespaces", func() {
			pods, err := utils.GetPods(ctx, fakeClient, "", labels.NewSelector(), 2)

			Expect(len(pods)).To(Equal(18))
			Expect(err).To(BeNil())
		})
		It("should return correct number of labeled pods in default namespace", func() {
			pods, err := utils.GetPods(ctx, fakeClient, namespaceDefault, labels.SelectorFromSet(labels.Set{"foo": "bar"}), 2)

			Expect(len(pods)).To(Equal(2))
			Expect(err).To(BeNil())
		})
	})

	Describe("#GetRoleBindings", func() {
		BeforeEach(func() {
			fakeClient = fakeclient.NewClientBuilder().Build()
			for i := 0; i < 5; i++ {
				roleBinding := &rbacv1.RoleBinding{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceDefault,
					},
					RoleRef: rbacv1.RoleRef{
						APIGroup: "rbac.authorization.k8s.io",
						Kind:     "Role",
						Name:     "viewer",
					},
				}
				Expect(fakeClient.Create(ctx, roleBinding)).To(Succeed())
			}
			for i := 0; i < 3; i++ {
				roleBinding := &rbacv1.RoleBinding{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceFoo,
					},
					RoleRef: rbacv1.RoleRef{
						APIGroup: "rbac.authorization.k8s.io",
						Kind:     "ClusterRole",
						Name:     "view",
					},
				}
				Expect(fakeClient.Create(ctx, roleBinding)).To(Succeed())
			}
		})

		It("should return correct number of roleBindings in default namespace", func() {
			roleBindings, err := utils.GetRoleBindings(ctx, fakeClient, namespaceDefault, labels.NewSelector(), 2)

			Expect(len(roleBindings)).To(Equal(5))
			Expect(err).To(BeNil())
		})

		It("should return correct number of roleBindings in all namespaces", func() {
			roleBindings, err := utils.GetRoleBindings(ctx, fakeClient, "", labels.NewSelector(), 2)

			Expect(len(roleBindings)).To(Equal(8))
			Expect(err).To(BeNil())
		})
	})

	Describe("#GetNetworkPolicies", func() {
		BeforeEach(func() {
			fakeClient = fakeclient.NewClientBuilder().Build()
			for i := 0; i < 4; i++ {
				networkPolicy := &networkingv1.NetworkPolicy{
					ObjectMeta: metav1.ObjectMeta{
						Name:      strconv.Itoa(i),
						Namespace: namespaceDefault,
					},
				}
				Expect(fakeClient.Create(ctx, networkPolicy)).To(Succeed())
			}
			networkPolicy := &networkingv1.NetworkPolicy{
				ObjectMeta: metav1.ObjectMeta{
					Name:      "deny-all",
					Namespace: namespaceFoo,
				},
			}
			Expect(fakeClient.Create(ctx, networkPolicy)).To(Succeed())
		})

		It("should return correct number of networkPolicies in default namespace", func() {
			networkPolicies, err := utils.GetNetworkPolicies(ctx, fakeClient, namespaceDefault, labels.NewSelector(), 2)

			Expect(len(networkPolicies)).To(Equal(4))
			Expect(err).To(BeNil())
		})

		It("should return correct number of networkPolicies in all namespaces", func() {
			networkPolicies, err := utils.GetNetworkPolicies(ctx, fakeClient, "", labels.NewSelector(), 2)

			Expect(len(networkPolicies)).To(Equal(5))
			Expect(err).To(BeNil())
		})
	})
})
