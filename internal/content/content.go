// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content holds the static marketing copy for the services and
// team pages. It changes rarely enough that a database table would be
// overkill.
package content

// Service describes one consulting service offering.
type Service struct {
	Title    string
	Subtitle string
	Features []string
	Image    string
}

// TeamMember describes one member of the leadership team.
type TeamMember struct {
	Name  string
	Title string
	Bio   string
	Image string
}

// Services returns the full service catalogue in display order.
func Services() []Service {
	return services
}

// FeaturedServices returns the services highlighted on the home page.
func FeaturedServices() []Service {
	if len(services) > 4 {
		return services[:4]
	}
	return services
}

// TeamMembers returns the leadership team in display order.
func TeamMembers() []TeamMember {
	return teamMembers
}

var services = []Service{
	{
		Title:    "Strategic Market Access",
		Subtitle: "Connect with high-value investment opportunities through our comprehensive market analysis and strategic facilitation services.",
		Features: []string{
			"In-depth market analysis and feasibility studies.",
			"Facilitation and vetting of exclusive investment opportunities.",
			"Risk assessment and mitigation strategies.",
			"Support for joint ventures and strategic partnerships.",
		},
		Image: "/static/img/services/market-access.jpg",
	},
	{
		Title:    "Government Relations",
		Subtitle: "Benefit from elite-level engagement with key decision-makers and policy influencers for seamless regulatory navigation.",
		Features: []string{
			"Facilitation of high-level government meetings.",
			"Guidance on licensing, permits, and regulatory compliance.",
			"Advocacy and policy monitoring.",
			"Building and maintaining strong public-private partnerships.",
		},
		Image: "/static/img/services/government-relations.jpg",
	},
	{
		Title:    "ESG Excellence",
		Subtitle: "Facilitate sustainable investment frameworks aligned with global standards and local community impact objectives.",
		Features: []string{
			"Facilitation of ESG and impact investment strategies.",
			"Compliance guidance for international sustainability standards.",
			"Community engagement and social impact program design.",
			"Green energy and sustainable infrastructure project consultation.",
		},
		Image: "/static/img/services/esg.jpg",
	},
	{
		Title:    "Investor Concierge Services",
		Subtitle: "Experience white-glove investor facilitation including logistics, secure accommodations, and personalized itinerary management.",
		Features: []string{
			"Executive travel and accommodation arrangements.",
			"Personalized business itineraries and meeting coordination.",
			"Secure transportation and executive protection.",
			"On-demand business support and translation services.",
		},
		Image: "/static/img/services/concierge.jpg",
	},
}

var teamMembers = []TeamMember{
	{
		Name:  "Teresa Nnang Avomo",
		Title: "Directora General",
		Bio:   "Visionary leader with extensive experience in the oil and energy sector. As the first female Managing Director of GEPetrol, Teresa brings over 10 years of engineering expertise and strategic leadership in STEAM industries to drive Blackstone EG's consulting and facilitation initiatives.",
		Image: "teresa.jpg",
	},
	{
		Name:  "Dionisia Alogo",
		Title: "Encargada de Captación Comercial y Legal",
		Bio:   "Founder of ALOGO LAW FIRM, specializing in corporate law and business development. Expert in international legal standards with deep understanding of commercial frameworks that drive competitive business environments in Equatorial Guinea.",
		Image: "dionisia.jpg",
	},
	{
		Name:  "Yvone Bekale",
		Title: "Encargado de Captación Internacional",
		Bio:   "International business development specialist with expertise in cross-border investment facilitation. Leads strategic partnerships and investor relations across global markets, connecting international capital with African opportunities.",
		Image: "yvone-bekale.jpg",
	},
	{
		Name:  "Rufino Esono",
		Title: "Encargado de Operaciones de Campo e Institucionales",
		Bio:   "Operations and institutional relations expert with extensive field experience. Manages on-ground logistics, government liaisons, and ensures seamless execution of consulting projects while maintaining strong institutional partnerships.",
		Image: "rufino-esono.jpg",
	},
	{
		Name:  "Catalina Esono Abomo",
		Title: "Encargada de Redes Sociales y Medios Digitales",
		Bio:   "Digital marketing strategist and social media expert. Manages Blackstone EG's digital presence, investor communications, and multimedia content strategy to enhance market visibility and stakeholder engagement across digital platforms.",
		Image: "catalina-esono-abomo.jpg",
	},
	{
		Name:  "Diana",
		Title: "Encargada de Relaciones Internacionales, Visibilidad e Imagen Corporativa",
		Bio:   "International relations and corporate communications specialist. Oversees brand positioning, public relations, and corporate image management while building strategic relationships with international stakeholders and media partners.",
		Image: "diana.jpg",
	},
}
