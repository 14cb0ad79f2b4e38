package catalog

// ── Seed data ────────────────────────────────────────────────────────────

// DefaultPopularServices are the ids highlighted in the portfolio sidebar.
var DefaultPopularServices = []string{"workspace-support", "workspace-managed"}

// Seed returns the reference portfolio the desk starts with.
func Seed() Data {
	return Data{
		Services:    seedServices(),
		Documents:   seedDocuments(),
		CaseStudies: nil,
		Experts:     seedExperts(),
		Pricing:     seedPricing(),
	}
}

func seedServices() []Service {
	return []Service{
		{
			ID:           "workspace-support",
			Name:         "Servi+ Workspace Support Services",
			Description:  "Servicio de soporte técnico en español que garantiza la continuidad operativa de los servicios Core de Google Workspace, con atención local, tiempos de respuesta garantizados y escalamiento directo a Google. Diseñado para empresas que requieren respaldo técnico confiable, cobertura flexible (Básico, Mejorado o Premium) y trazabilidad completa de cada incidente.",
			BusinessLine: BusinessLineGoogleCloud,
			ProductType:  ProductTypeOwn,
			Category:     "Workspaces",
			Rating:       4,
			KeyBenefits: []Benefit{
				{Title: "Continuidad del Negocio", Description: "Monitoreo proactivo y guía experta para proteger tus datos."},
				{Title: "Reducción del Tiempo de Inactividad", Description: "Asegura que estás en el plan correcto y usando las licencias de manera efectiva."},
				{Title: "Seguridad y Control Operativo", Description: "Nuestros expertos certificados en Google Cloud están disponibles a toda hora."},
				{Title: "Optimización de Costos de Soporte", Description: "Minimiza el tiempo de inactividad y resuelve problemas rápidamente."},
				{Title: "Acompañamiento Especializado", Description: "Ingenieros certificados en Google Workspace brindan soporte local en español, con conocimiento contextual del entorno del cliente."},
				{Title: "Respuesta Inmediata 24/7 (Planes Avanzados)", Description: "Para entornos críticos, Servi+ ofrece soporte continuo con atención Premium 24x7 y asesoría directa del equipo experto."},
			},
		},
		{
			ID:           "aws-managed",
			Name:         "Servicios Gestionados para AWS",
			Description:  "Suite completa de servicios gestionados para tu infraestructura de AWS.",
			BusinessLine: BusinessLineAWS,
			ProductType:  ProductTypeRepresented,
			Category:     "Cloud GCP",
			Rating:       3,
			KeyBenefits: []Benefit{
				{Title: "Infraestructura Preparada para el Futuro", Description: "Gestión experta de tus recursos en la nube."},
				{Title: "Escalabilidad y Rendimiento", Description: "Optimiza tu entorno de AWS para el crecimiento."},
			},
		},
		{
			ID:           "cloud-ia-service",
			Name:         "Servicio de Cloud IA",
			Description:  "Inteligencia artificial en la nube para análisis predictivo.",
			BusinessLine: BusinessLineGoogleCloud,
			ProductType:  ProductTypeRepresented,
			Category:     "Cloud IA",
			Rating:       5,
			KeyBenefits:  []Benefit{{Title: "IA Potente", Description: "Modelos avanzados."}},
		},
		{
			ID:           "helpdesk-ia-service",
			Name:         "HelpDesk con IA",
			Description:  "Automatiza el soporte al cliente con IA conversacional.",
			BusinessLine: BusinessLineGoogleCloud,
			ProductType:  ProductTypeRepresented,
			Category:     "Cloud IA",
			Rating:       4,
			KeyBenefits:  []Benefit{{Title: "Soporte 24/7", Description: "Resolución automática de tickets."}},
		},
		{
			ID:           "ai-platform",
			Name:         "Plataforma de IA Generativa",
			Description:  "Crea contenido, imágenes y código con nuestros modelos de IA.",
			BusinessLine: BusinessLineGoogleCloud,
			ProductType:  ProductTypeRepresented,
			Category:     "AI",
			Rating:       4,
			KeyBenefits:  []Benefit{{Title: "Creatividad Aumentada", Description: "Generación de texto e imágenes de alta calidad."}},
		},
		{
			ID:           "data-analytics-aws",
			Name:         "Análisis de Datos en AWS",
			Description:  "Visualiza y entiende tus datos con los servicios de analítica de AWS.",
			BusinessLine: BusinessLineAWS,
			ProductType:  ProductTypeRepresented,
			Category:     "Data & Analytics",
			Rating:       4,
			KeyBenefits:  []Benefit{{Title: "Insights de Negocio", Description: "Toma decisiones estratégicas basadas en datos."}},
		},
		{
			ID:           "cybersecurity-gcp",
			Name:         "Suite de Ciberseguridad GCP",
			Description:  "Protege tus activos digitales en Google Cloud con seguridad de nivel empresarial.",
			BusinessLine: BusinessLineGoogleCloud,
			ProductType:  ProductTypeRepresented,
			Category:     "Cybersecurity",
			Rating:       5,
			KeyBenefits:  []Benefit{{Title: "Protección Integral", Description: "Defensa contra amenazas avanzadas y vulnerabilidades."}},
		},
	}
}

func seedDocuments() []SalesDocument {
	return []SalesDocument{
		{ID: "doc1", ServiceID: "workspace-support", Name: "One Pager", Type: DocumentDOC, URL: "https://docs.google.com/document/d/1n4GoIjnqe1FSFfnWyEWfAsH0QfhRjF6DFudmwd3IjbY/edit?tab=t.0"},
		{ID: "doc2", ServiceID: "workspace-support", Name: "Presentación Comercial", Type: DocumentPPT, URL: "https://docs.google.com/presentation/d/1Rwg83EmgpAUmi-Dd_MNopMFPbEoEDmDa/edit?slide=id.g36c9bd43210_1_406#slide=id.g36c9bd43210_1_406"},
		{ID: "doc3", ServiceID: "workspace-support", Name: "Especificaciones del Servicio", Type: DocumentDOC, URL: "https://docs.google.com/document/d/1pvGji2c8qvGsKn_qf41TvYGp2O8oBwFPPi2TU5zvj-k/edit?tab=t.0"},
		{ID: "doc4", ServiceID: "workspace-support", Name: "Contrato de Servicios", Type: DocumentDOC, URL: "https://docs.google.com/document/d/1yUWA3irmJY_F8ZNsYb9f13IP5cz9nvZkRzTIFJupslA/edit?tab=t.0"},
	}
}

func seedExperts() []Expert {
	return []Expert{
		{
			ID:        "exp1",
			ServiceID: "workspace-support",
			Name:      "Claudia Gutierrez",
			Role:      "Gerente Relacionamiento con el cliente",
			ImageURL:  "https://lh3.googleusercontent.com/a-/ALV-UjUUuejJFwRToJoKlMAA7vjFRzZviEfjaUIn7CMoORIaKxYRB8Yl=s300-p-k-rw-no",
		},
	}
}

// seedPricing includes a rule for workspace-managed, which has no service
// entry yet; quotes can only be produced once the service is added.
func seedPricing() []PricingRule {
	return []PricingRule{
		{
			ServiceID: "workspace-support",
			Plans: []PricingPlan{
				{Name: PlanBasic, Cost: 5, Price: 8},
				{Name: PlanOperational, Cost: 8, Price: 12},
				{Name: PlanPremium, Cost: 12, Price: 18},
			},
			Addons: []Addon{
				{ID: "addon1", Name: "Módulo de Seguridad Avanzada", Cost: 2, Price: 4},
				{ID: "addon2", Name: "Prevención de Pérdida de Datos", Cost: 3, Price: 5},
			},
		},
		{
			ServiceID: "workspace-managed",
			Plans: []PricingPlan{
				{Name: PlanBasic, Cost: 15, Price: 25},
				{Name: PlanOperational, Cost: 22, Price: 35},
				{Name: PlanPremium, Cost: 30, Price: 50},
			},
			Addons: []Addon{
				{ID: "m-addon1", Name: "Gestión de Endpoints", Cost: 4, Price: 7},
				{ID: "m-addon2", Name: "Control de Identidad y Acceso", Cost: 5, Price: 8},
			},
		},
	}
}
