package classifier

// Template is the canned advice for one security category.
type Template struct {
	Summary string   `yaml:"summary"`
	Dos     []string `yaml:"dos"`
	Donts   []string `yaml:"donts"`
}

// categoryDef pairs a category name with its scoring keywords and advice
// template. Order matters: it breaks score ties deterministically.
type categoryDef struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Template Template `yaml:",inline"`
}

// GeneralCategory is selected when no category keywords match.
const GeneralCategory = "general"

func defaultCategories() []categoryDef {
	return []categoryDef{
		{
			Name:     "vulnerability",
			Keywords: []string{"vulnerability", "cve", "exploit", "patch", "bug", "flaw", "weakness"},
			Template: Template{
				Summary: "This article discusses critical vulnerability issues that could be exploited if left unaddressed. Organizations should prioritize applying security patches to mitigate potential risks.",
				Dos: []string{
					"Apply security patches immediately as they become available",
					"Implement recommended workarounds if patches aren't yet available",
					"Monitor vendor security bulletins for updates on these vulnerabilities",
					"Run vulnerability scans regularly to identify affected systems",
				},
				Donts: []string{
					"Don't ignore critical vulnerability notifications related to your systems",
					"Don't leave vulnerable systems exposed to the internet unnecessarily",
					"Don't delay security updates for critical production systems",
					"Don't run outdated software with known security vulnerabilities",
				},
			},
		},
		{
			Name:     "malware",
			Keywords: []string{"malware", "virus", "trojan", "ransomware", "botnet", "backdoor", "worm"},
			Template: Template{
				Summary: "This article addresses malware threats that can compromise system security and data integrity. Organizations should implement robust malware protection measures.",
				Dos: []string{
					"Deploy comprehensive anti-malware solutions across all systems",
					"Maintain offline backups of critical data to protect against ransomware",
					"Scan all downloaded files before opening them",
					"Implement application whitelisting where practical",
				},
				Donts: []string{
					"Don't open email attachments or click links from untrusted sources",
					"Don't disable security software even temporarily",
					"Don't pay ransoms if infected with ransomware - it encourages attackers",
					"Don't run applications from unknown or untrusted sources",
				},
			},
		},
		{
			Name:     "phishing",
			Keywords: []string{"phishing", "social engineering", "scam", "spam", "fraud", "impersonation"},
			Template: Template{
				Summary: "This article highlights phishing attack techniques that attempt to steal sensitive information through deception. Users should exercise caution with unexpected communications.",
				Dos: []string{
					"Verify sender identities before responding to requests for information",
					"Inspect URLs carefully before clicking on links in emails or messages",
					"Report suspected phishing attempts to your security team",
					"Use multi-factor authentication for all important accounts",
				},
				Donts: []string{
					"Don't click on links in unsolicited emails, even if they appear legitimate",
					"Don't provide personal or financial information in response to email requests",
					"Don't rush decisions when pressured to act quickly by email or phone",
					"Don't ignore warning signs like spelling errors or suspicious sender addresses",
				},
			},
		},
		{
			Name:     "data_breach",
			Keywords: []string{"breach", "leak", "stolen data", "exposed data", "compromised"},
			Template: Template{
				Summary: "This article discusses a data breach incident where sensitive information was compromised. Organizations should take immediate steps to protect affected users and prevent similar incidents.",
				Dos: []string{
					"Change passwords for any accounts mentioned in breach notifications",
					"Monitor your accounts and credit reports for suspicious activity",
					"Enable breach alerts and notifications for your accounts",
					"Consider using a password manager to create and store unique credentials",
				},
				Donts: []string{
					"Don't ignore breach notifications related to your accounts or data",
					"Don't reuse passwords across multiple sites or services",
					"Don't share sensitive personal information unnecessarily",
					"Don't use easily guessable security questions for account recovery",
				},
			},
		},
		{
			Name:     "network_security",
			Keywords: []string{"network", "firewall", "router", "protocol", "vpn", "traffic"},
			Template: Template{
				Summary: "This article covers network security vulnerabilities that could allow unauthorized access. Network administrators should review their security configurations to address these issues.",
				Dos: []string{
					"Implement network segmentation to contain potential breaches",
					"Configure firewalls with strict rules following the principle of least privilege",
					"Enable encryption for all sensitive network traffic",
					"Regularly audit network devices and configurations for security issues",
				},
				Donts: []string{
					"Don't expose network management interfaces to the public internet",
					"Don't use default credentials for network devices",
					"Don't neglect regular firmware updates for network infrastructure",
					"Don't overlook the security of remote access solutions",
				},
			},
		},
		{
			Name:     "authentication",
			Keywords: []string{"password", "authentication", "credentials", "login", "mfa", "2fa"},
			Template: Template{
				Summary: "This article highlights authentication vulnerabilities that could lead to account compromise. Organizations should strengthen their authentication mechanisms.",
				Dos: []string{
					"Implement multi-factor authentication for all user accounts",
					"Use strong, unique passwords for each account or service",
					"Consider adopting passwordless authentication methods where appropriate",
					"Regularly audit user access rights and permissions",
				},
				Donts: []string{
					"Don't share account credentials between multiple users",
					"Don't store passwords in plaintext or insecurely",
					"Don't allow lengthy session durations without re-authentication",
					"Don't rely solely on password-based authentication for sensitive systems",
				},
			},
		},
		{
			Name:     "encryption",
			Keywords: []string{"encryption", "cryptography", "cipher", "encrypted", "decrypt"},
			Template: Template{
				Summary: "This article discusses encryption issues that could potentially expose sensitive data. Organizations should review their cryptographic implementations.",
				Dos: []string{
					"Use industry-standard encryption algorithms and protocols",
					"Implement end-to-end encryption for sensitive communications",
					"Properly manage encryption keys with secure storage and rotation",
					"Encrypt data both in transit and at rest",
				},
				Donts: []string{
					"Don't use outdated or deprecated encryption algorithms",
					"Don't implement custom cryptographic solutions without expert review",
					"Don't store encryption keys alongside the encrypted data",
					"Don't overlook encrypted backup solutions for sensitive data",
				},
			},
		},
		{
			Name:     "zero_day",
			Keywords: []string{"zero-day", "0day", "unpatched", "unknown vulnerability"},
			Template: Template{
				Summary: "This article reveals details about a zero-day vulnerability with no available patch. Organizations should implement mitigations and closely monitor affected systems.",
				Dos: []string{
					"Implement recommended workarounds from security researchers or vendors",
					"Monitor affected systems closely for signs of exploitation",
					"Apply network-level protections to filter malicious traffic",
					"Prepare incident response procedures in case of exploitation",
				},
				Donts: []string{
					"Don't ignore zero-day vulnerability announcements",
					"Don't delay implementing mitigations where patches aren't available",
					"Don't expose vulnerable systems directly to the internet",
					"Don't wait for a patch before taking protective measures",
				},
			},
		},
		{
			Name:     "compliance",
			Keywords: []string{"compliance", "regulation", "gdpr", "hipaa", "pci", "policy"},
			Template: Template{
				Summary: "This article addresses regulatory compliance issues in cybersecurity. Organizations should assess their practices to ensure they meet legal and industry requirements.",
				Dos: []string{
					"Maintain documentation of security controls and practices",
					"Conduct regular compliance audits and assessments",
					"Stay informed about regulatory changes affecting your industry",
					"Implement data governance frameworks appropriate to your organization",
				},
				Donts: []string{
					"Don't ignore compliance deadlines or regulatory notifications",
					"Don't collect more user data than necessary for business purposes",
					"Don't overlook third-party vendor compliance requirements",
					"Don't implement security controls without considering regulatory frameworks",
				},
			},
		},
		{
			Name:     "iot_security",
			Keywords: []string{"iot", "smart device", "connected device", "smart home"},
			Template: Template{
				Summary: "This article highlights security weaknesses in IoT devices that could be exploited. Users and organizations should take steps to secure their connected devices.",
				Dos: []string{
					"Change default passwords on all IoT devices immediately",
					"Keep device firmware updated with the latest security patches",
					"Isolate IoT devices on separate network segments",
					"Disable unnecessary features and services on smart devices",
				},
				Donts: []string{
					"Don't connect sensitive IoT devices directly to the internet",
					"Don't ignore security in favor of convenience when setting up devices",
					"Don't leave unused IoT devices powered on and connected",
					"Don't overlook physical security for important IoT installations",
				},
			},
		},
		{
			Name:     "cloud_security",
			Keywords: []string{"cloud", "aws", "azure", "gcp", "saas", "cloud storage"},
			Template: Template{
				Summary: "This article covers cloud security challenges that could lead to data exposure. Cloud service users should review their configurations to protect their assets.",
				Dos: []string{
					"Implement the principle of least privilege for cloud resource access",
					"Enable multi-factor authentication for all cloud service accounts",
					"Regularly audit cloud configurations for security misconfigurations",
					"Use cloud security posture management tools to identify risks",
				},
				Donts: []string{
					"Don't leave cloud storage buckets publicly accessible",
					"Don't hardcode credentials in application code or scripts",
					"Don't overlook security responsibilities in your cloud service agreements",
					"Don't neglect to encrypt sensitive data stored in the cloud",
				},
			},
		},
		{
			Name:     "mobile_security",
			Keywords: []string{"mobile", "android", "ios", "smartphone", "app"},
			Template: Template{
				Summary: "This article identifies security issues affecting mobile devices and applications. Users should take precautions to protect their mobile devices and data.",
				Dos: []string{
					"Keep mobile operating systems and apps updated with security patches",
					"Only install applications from official app stores",
					"Use biometric authentication where available",
					"Encrypt sensitive data stored on mobile devices",
				},
				Donts: []string{
					"Don't jailbreak or root devices used for sensitive activities",
					"Don't grant excessive permissions to mobile applications",
					"Don't connect to untrusted public Wi-Fi networks without a VPN",
					"Don't store sensitive unencrypted data on mobile devices",
				},
			},
		},
	}
}

func defaultGeneralTemplate() Template {
	return Template{
		Summary: "This article covers important cybersecurity topics that require attention. Following general security best practices can help mitigate these risks.",
		Dos: []string{
			"Keep all systems and software updated with security patches",
			"Implement defense-in-depth security strategies with multiple protective layers",
			"Regularly back up critical data following the 3-2-1 rule",
			"Conduct regular security awareness training for all users",
		},
		Donts: []string{
			"Don't overlook basic security controls in favor of advanced solutions",
			"Don't reuse credentials across different systems or services",
			"Don't provide users with more access rights than necessary",
			"Don't ignore security alerts or unusual system behavior",
		},
	}
}
