package main

import "github.com/jonathan/task-recommender/internal/types"

func entity(complexity, time float64, tags ...string) types.Entity {
	return types.Entity{Complexity: complexity, Time: time, Tags: tags}
}

// demoTasks is the sample quest board used by the preview command.
var demoTasks = []types.Entity{
	entity(2, 11, "Docker", "Kubernetes", "CI/CD"),
	entity(1, 3.1, "Docker", "Kubernetes"),
	entity(2, 16, "Kubernetes"),
	entity(0, 11, "Docker", "Kubernetes", "CI/CD"),
	entity(1.5, 11, "UI/UX Design", "Design"),
	entity(1.5, 11, "Backend"),
	entity(3, 8, "React", "JavaScript", "CSS"),
	entity(2, 5, "Vue.js", "JavaScript"),
	entity(1, 7, "HTML", "CSS", "JavaScript"),
	entity(2.5, 9, "Angular", "TypeScript"),
	entity(1, 4, "JavaScript", "CSS"),
	entity(3, 10, "React", "Redux"),
	entity(2, 10, "Python", "Machine Learning", "Pandas"),
	entity(3, 12, "R", "Data Analysis"),
	entity(1.5, 8, "SQL", "Data Visualization"),
	entity(2, 15, "Python", "TensorFlow"),
	entity(2.5, 10, "Statistics", "Data Mining"),
	entity(1, 5, "Python", "Numpy"),
	entity(1.5, 6, "Linux", "Shell Scripting"),
	entity(2, 8, "Windows Server", "Active Directory"),
	entity(2.5, 10, "Network Configuration", "Firewall"),
	entity(1, 4, "Backup Solutions", "Data Recovery"),
	entity(3, 12, "Cloud Services", "AWS"),
	entity(2, 7, "Linux", "Docker"),
	entity(2, 9, "Swift", "iOS Development"),
	entity(1.5, 7, "Kotlin", "Android Development"),
	entity(2, 8, "React Native", "JavaScript"),
	entity(3, 10, "Flutter", "Dart"),
	entity(1, 5, "Objective-C", "iOS"),
	entity(2.5, 11, "Java", "Android"),
}

// demoWorkers are the sample profiles ranked against demoTasks.
var demoWorkers = []types.Entity{
	entity(1.5, 11, "devops", "Docker", "Kubernetes", "CI/CD"),
	entity(2, 7, "JavaScript", "React", "CSS", "HTML"),
	entity(2.5, 12, "Python", "Machine Learning", "Data Analysis", "SQL"),
	entity(2, 9, "Linux", "Network Configuration", "Cloud Services", "Shell Scripting"),
	entity(2, 8, "Kotlin", "Android Development", "Java", "React Native"),
}
