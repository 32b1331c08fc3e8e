package terminal

const helpText = `Available commands:
  help - Show this help message
  clear - Clear the terminal
  about - About the portfolio author
  skills - List programming skills
  projects - List notable projects
  contact - Show contact information
  ls - List files in current directory
  cat <file> - Display file contents`

const aboutText = `Hi there! I'm a passionate frontend developer specializing in building
interactive web applications with modern technologies like React,
TypeScript, and TailwindCSS. I love creating intuitive and engaging
user experiences and constantly exploring new web technologies.`

const skillsText = `Technical Skills:
  - Frontend: React, Vue, Angular, JavaScript/TypeScript
  - Styling: CSS, SASS, TailwindCSS, Styled Components
  - Backend: Node.js, Express, Django
  - Databases: MongoDB, PostgreSQL, MySQL
  - Tools: Git, Docker, Webpack, Vite`

const projectsText = `Notable Projects:
  1. E-commerce Platform - React/Node.js/MongoDB
  2. Weather Dashboard - React/TypeScript
  3. Task Management App - Vue/Firebase

Type "cat Projects/E-commerce Platform.txt" to learn more about specific projects.`

const contactText = `Get in touch:
  - Email: contact@myportfolio.com
  - LinkedIn: linkedin.com/in/myportfolio
  - GitHub: github.com/myportfolio
  - Twitter: @myportfolio`
