package profile

// skillEntry maps a canonical skill name to the lowercase surface forms it
// is recognized by. The slice order is the insertion order of extracted
// skills, so it must stay stable.
type skillEntry struct {
	name  string
	forms []string
}

var skillDictionary = []skillEntry{
	// Programming languages
	{"JavaScript", []string{"javascript", "js", "es6", "es2015", "ecmascript"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"Python", []string{"python", "py", "python3"}},
	{"Java", []string{"java", "java8", "java11", "java17"}},
	{"C++", []string{"c++", "cpp", "cplusplus"}},
	{"C#", []string{"c#", "csharp", "c sharp"}},
	{"Ruby", []string{"ruby", "rails"}},
	{"PHP", []string{"php", "php7", "php8"}},
	{"Go", []string{"golang", "go"}},
	{"Rust", []string{"rust"}},
	{"Swift", []string{"swift"}},
	{"Kotlin", []string{"kotlin"}},
	{"Scala", []string{"scala"}},
	{"R", []string{"r programming"}},

	// Frontend frameworks
	{"React", []string{"react", "reactjs", "react.js"}},
	{"Angular", []string{"angular", "angularjs"}},
	{"Vue", []string{"vue", "vuejs", "vue.js"}},
	{"Next.js", []string{"nextjs", "next.js", "next"}},
	{"Svelte", []string{"svelte", "sveltekit"}},
	{"jQuery", []string{"jquery"}},

	// Backend frameworks
	{"Node.js", []string{"nodejs", "node.js", "node"}},
	{"Express", []string{"express", "expressjs", "express.js"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"Spring", []string{"spring", "spring boot", "springboot"}},
	{"Laravel", []string{"laravel"}},
	{"ASP.NET", []string{"asp.net", "aspnet", "asp net"}},

	// Markup and styling
	{"HTML", []string{"html", "html5"}},
	{"CSS", []string{"css", "css3"}},
	{"Tailwind", []string{"tailwind", "tailwindcss"}},
	{"Bootstrap", []string{"bootstrap"}},
	{"SASS", []string{"sass", "scss"}},
	{"LESS", []string{"less"}},
	{"Material-UI", []string{"material-ui", "mui", "material ui"}},

	// Databases
	{"MongoDB", []string{"mongodb", "mongo"}},
	{"PostgreSQL", []string{"postgresql", "postgres", "psql"}},
	{"MySQL", []string{"mysql"}},
	{"Redis", []string{"redis"}},
	{"Oracle", []string{"oracle", "oracle db"}},
	{"SQL", []string{"sql", "sql server", "mssql"}},
	{"Cassandra", []string{"cassandra"}},
	{"DynamoDB", []string{"dynamodb"}},
	{"Firebase", []string{"firebase", "firestore"}},

	// Cloud and devops
	{"AWS", []string{"aws", "amazon web services"}},
	{"Azure", []string{"azure", "microsoft azure"}},
	{"GCP", []string{"gcp", "google cloud", "google cloud platform"}},
	{"Docker", []string{"docker", "containerization"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"CI/CD", []string{"ci/cd", "cicd", "continuous integration"}},
	{"Jenkins", []string{"jenkins"}},
	{"GitLab CI", []string{"gitlab ci", "gitlab"}},
	{"GitHub Actions", []string{"github actions"}},
	{"Terraform", []string{"terraform"}},

	// Version control
	{"Git", []string{"git", "version control"}},
	{"GitHub", []string{"github"}},
	{"Bitbucket", []string{"bitbucket"}},

	// Methodologies
	{"Agile", []string{"agile", "agile methodology"}},
	{"Scrum", []string{"scrum", "scrum master"}},
	{"Kanban", []string{"kanban"}},
	{"JIRA", []string{"jira"}},

	// APIs and architecture
	{"REST", []string{"rest", "restful", "rest api"}},
	{"GraphQL", []string{"graphql"}},
	{"API", []string{"api", "apis"}},
	{"Microservices", []string{"microservices", "micro services"}},
	{"DevOps", []string{"devops"}},
	{"Serverless", []string{"serverless", "lambda"}},

	// AI and ML
	{"Machine Learning", []string{"machine learning", "ml"}},
	{"AI", []string{"artificial intelligence", "ai"}},
	{"TensorFlow", []string{"tensorflow"}},
	{"PyTorch", []string{"pytorch"}},
	{"NLP", []string{"nlp", "natural language processing"}},
	{"Deep Learning", []string{"deep learning"}},
	{"Data Science", []string{"data science"}},

	// Mobile
	{"React Native", []string{"react native", "react-native"}},
	{"Flutter", []string{"flutter"}},
	{"iOS", []string{"ios", "objective-c"}},
	{"Android", []string{"android", "android development"}},
	{"Mobile", []string{"mobile development", "mobile app"}},

	// Testing
	{"Testing", []string{"testing", "qa", "quality assurance"}},
	{"Jest", []string{"jest"}},
	{"Mocha", []string{"mocha"}},
	{"Cypress", []string{"cypress"}},
	{"Selenium", []string{"selenium"}},
	{"Unit Testing", []string{"unit testing", "unit tests"}},
	{"TDD", []string{"tdd", "test driven development"}},
}

const maxSkills = 30

// extractSkills collects canonical skill names found in the lowercased
// text. Order follows the dictionary, capped at maxSkills.
func extractSkills(lower string) []string {
	var skills []string
	for _, entry := range skillDictionary {
		for _, form := range entry.forms {
			if containsForm(lower, form) {
				skills = append(skills, entry.name)
				break
			}
		}
		if len(skills) >= maxSkills {
			break
		}
	}
	return skills
}
