package seed

// Vocabularies for generated records. These mirror the demo dataset the
// tracker has always shipped with, so a reseeded store looks familiar.

var companies = []string{
	"Google", "Microsoft", "Amazon", "Meta", "Apple",
	"Netflix", "Stripe", "Airbnb", "Uber", "Tesla",
	"Spotify", "Adobe", "Salesforce", "Oracle", "IBM",
	"Intel", "NVIDIA", "PayPal", "Shopify", "Zoom",
}

var jobTitles = []string{
	"Frontend Engineer", "Backend Engineer", "Full Stack Developer", "DevOps Engineer",
	"Data Scientist", "Product Manager", "UX Designer", "UI Designer",
	"Mobile Developer", "Software Architect", "QA Engineer", "Site Reliability Engineer",
	"Machine Learning Engineer", "Security Engineer", "Technical Writer", "Engineering Manager",
}

var techTags = []string{
	"React", "Vue", "Angular", "TypeScript", "JavaScript", "Python", "Java", "Go",
	"Node.js", "GraphQL", "Docker", "Kubernetes", "AWS", "Azure", "PostgreSQL",
	"MongoDB", "Redis", "Elasticsearch", "Microservices", "Remote", "Senior", "Junior",
}

var firstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery", "Quinn",
	"Sage", "River", "Blake", "Cameron", "Drew", "Emery", "Finley", "Harper",
	"Jamie", "Kendall", "Lane", "Marley", "Nico", "Parker", "Reagan", "Skyler",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
}

var interviewers = []string{"@john", "@jane", "@alex", "@sarah"}

type questionBank struct {
	title       string
	description string
	templates   []string
}

var questionBanks = []questionBank{
	{
		title:       "Technical Skills",
		description: "Evaluate technical competency and problem-solving abilities",
		templates: []string{
			"What is your experience with React?",
			"Explain the concept of closures in JavaScript",
			"How do you handle state management in large applications?",
			"What is your preferred testing framework?",
			"Describe your experience with CI/CD pipelines",
		},
	},
	{
		title:       "Experience & Background",
		description: "Assess relevant work experience and qualifications",
		templates: []string{
			"How many years of experience do you have in software development?",
			"Tell us about your most challenging project",
			"What is your preferred programming language?",
			"Have you worked in an Agile environment?",
			"Describe your leadership experience",
		},
	},
	{
		title:       "Cultural Fit",
		description: "Determine alignment with company values and work style",
		templates: []string{
			"What motivates you in your work?",
			"How do you handle tight deadlines?",
			"Describe your ideal work environment",
			"What are your career goals?",
			"How do you stay updated with technology trends?",
		},
	},
}
