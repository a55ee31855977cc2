// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteServices is the services page route.
	RouteServices = "/services"
	// RouteTeam is the team page route.
	RouteTeam = "/team"
	// RouteAbout is the about page route.
	RouteAbout = "/about"
	// RouteBlog is the blog route.
	RouteBlog = "/blog"
	// RoutePortfolio is the portfolio route.
	RoutePortfolio = "/portfolio"
	// RouteContact is the contact route.
	RouteContact = "/contact"

	// RouteAdminLogin is the admin login route.
	RouteAdminLogin = "/admin/login"
	// RouteAdminLogout is the admin logout route.
	RouteAdminLogout = "/admin/logout"
	// RouteAdmin is the admin dashboard route.
	RouteAdmin = "/admin"
	// RouteAdminContacts is the contact submissions admin route.
	RouteAdminContacts = "/admin/contacts"
	// RouteAdminPosts is the blog posts admin route.
	RouteAdminPosts = "/admin/posts"
	// RouteAdminPortfolio is the portfolio admin route.
	RouteAdminPortfolio = "/admin/portfolio"
	// RouteAdminUsers is the users admin route.
	RouteAdminUsers = "/admin/users"
	// RouteAdminSettings is the settings admin route.
	RouteAdminSettings = "/admin/settings"
)
